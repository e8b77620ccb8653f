package httpapi

import "net/http"

type MaintenanceHandler struct {
	Deps
}

// Orphans reports rows stranded by non-cascading deletes so the operator
// can see the gap; nothing here mutates.
func (h MaintenanceHandler) Orphans(w http.ResponseWriter, r *http.Request) {
	counts, err := h.DB.OrphanCounts(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, counts)
}

func (h MaintenanceHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.Checkpoint(r.Context()); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
