package httpapi

import (
	"net/http"

	"github.com/emreugurluhr/hrs/internal/events"
	"github.com/emreugurluhr/hrs/internal/query"
	"github.com/emreugurluhr/hrs/internal/store"
)

type ApprovalsHandler struct {
	Deps
}

// serveForCandidate handles /candidates/{id}/approvals.
func (h ApprovalsHandler) serveForCandidate(w http.ResponseWriter, r *http.Request, candidateID int64) {
	switch r.Method {
	case http.MethodGet:
		notes, err := query.ApprovalNotesFor(r.Context(), h.DB, candidateID)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, notes)

	case http.MethodPost:
		var a store.ApprovalNote
		if !decodeBody(w, r, &a) {
			return
		}
		a.CandidateID = candidateID

		if _, err := h.DB.GetCandidate(r.Context(), candidateID); err != nil {
			writeStoreError(w, r, err)
			return
		}

		id, err := h.DB.CreateApprovalNote(r.Context(), a)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.ChildChanged(reqID, events.ApprovalCreated, id, candidateID))

		out, err := h.DB.GetApprovalNote(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusCreated, out)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
