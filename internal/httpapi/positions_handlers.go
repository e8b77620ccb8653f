package httpapi

import (
	"net/http"
	"strings"

	"github.com/emreugurluhr/hrs/internal/events"
	"github.com/emreugurluhr/hrs/internal/query"
	"github.com/emreugurluhr/hrs/internal/store"
)

type PositionsHandler struct {
	Deps
}

func (h PositionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out []store.Position
		err error
	)
	if r.URL.Query().Get("active") == "1" {
		out, err = query.ActivePositions(r.Context(), h.DB)
	} else {
		out, err = h.DB.ListPositions(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h PositionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p store.Position
	if !decodeBody(w, r, &p) {
		return
	}
	id, err := h.DB.CreatePosition(r.Context(), p)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Changed(reqID, events.PositionCreated, id))

	created, err := h.DB.GetPosition(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (h PositionsHandler) ServeByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/positions/"))
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid position id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := h.DB.GetPosition(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, p)

	case http.MethodPatch:
		var patch store.PositionPatch
		if !decodeBody(w, r, &patch) {
			return
		}
		if err := h.DB.UpdatePosition(r.Context(), id, patch); err != nil {
			writeStoreError(w, r, err)
			return
		}
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.Changed(reqID, events.PositionUpdated, id))
		p, err := h.DB.GetPosition(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, p)

	case http.MethodDelete:
		if err := h.DB.DeletePosition(r.Context(), id); err != nil {
			writeStoreError(w, r, err)
			return
		}
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.Changed(reqID, events.PositionDeleted, id))
		writeJSON(w, map[string]any{"ok": true, "id": id})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
