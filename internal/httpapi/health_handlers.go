package httpapi

import (
	"net/http"

	"github.com/emreugurluhr/hrs/internal/events"
	"github.com/emreugurluhr/hrs/internal/store"
)

type HealthHandler struct {
	DB  *store.DB
	Hub *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.Pool.PingContext(r.Context()); err != nil {
		WriteError(w, r, http.StatusServiceUnavailable, "store_unavailable", err.Error())
		return
	}
	subs, dropped := h.Hub.Stats()
	writeJSON(w, map[string]any{
		"ok":             true,
		"subscribers":    subs,
		"dropped_events": dropped,
	})
}
