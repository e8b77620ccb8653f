package httpapi

import (
	"net/http"

	"github.com/emreugurluhr/hrs/internal/events"
	"github.com/emreugurluhr/hrs/internal/store"
)

type InterviewsHandler struct {
	Deps
}

// serveForCandidate handles /candidates/{id}/interview: GET reads the one
// interview sheet, PUT is the upsert the interview form submits.
func (h InterviewsHandler) serveForCandidate(w http.ResponseWriter, r *http.Request, candidateID int64) {
	switch r.Method {
	case http.MethodGet:
		iv, err := h.DB.GetInterviewByCandidate(r.Context(), candidateID)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, iv)

	case http.MethodPut:
		var iv store.Interview
		if !decodeBody(w, r, &iv) {
			return
		}
		iv.CandidateID = candidateID

		// The interview always belongs to a real candidate, even though
		// the store itself does not enforce the reference.
		if _, err := h.DB.GetCandidate(r.Context(), candidateID); err != nil {
			writeStoreError(w, r, err)
			return
		}

		id, err := h.DB.UpsertInterviewByCandidate(r.Context(), iv)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.ChildChanged(reqID, events.InterviewUpserted, id, candidateID))

		out, err := h.DB.GetInterview(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, out)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
