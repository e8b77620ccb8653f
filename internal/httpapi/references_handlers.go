package httpapi

import (
	"net/http"

	"github.com/emreugurluhr/hrs/internal/events"
	"github.com/emreugurluhr/hrs/internal/query"
	"github.com/emreugurluhr/hrs/internal/store"
)

type ReferencesHandler struct {
	Deps
}

// serveForCandidate handles /candidates/{id}/references: GET lists all
// checks, PUT upserts the first one (the reference form), POST records an
// additional one.
func (h ReferencesHandler) serveForCandidate(w http.ResponseWriter, r *http.Request, candidateID int64) {
	switch r.Method {
	case http.MethodGet:
		refs, err := query.ReferencesFor(r.Context(), h.DB, candidateID)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, refs)

	case http.MethodPut, http.MethodPost:
		var ref store.Reference
		if !decodeBody(w, r, &ref) {
			return
		}
		ref.CandidateID = candidateID

		if _, err := h.DB.GetCandidate(r.Context(), candidateID); err != nil {
			writeStoreError(w, r, err)
			return
		}

		var (
			id  int64
			err error
			typ string
		)
		if r.Method == http.MethodPut {
			id, err = h.DB.UpsertReferenceByCandidate(r.Context(), ref)
			typ = events.ReferenceUpserted
		} else {
			id, err = h.DB.CreateReference(r.Context(), ref)
			typ = events.ReferenceCreated
		}
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.ChildChanged(reqID, typ, id, candidateID))

		out, err := h.DB.GetReference(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, out)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
