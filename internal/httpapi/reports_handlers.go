package httpapi

import (
	"net/http"

	"github.com/emreugurluhr/hrs/internal/query"
	"github.com/emreugurluhr/hrs/internal/report"
)

type ReportsHandler struct {
	Deps
}

// Dashboard serves /reports/dashboard. Optional ?start=&end= narrow the
// candidate set by interview date before grouping.
func (h ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	candidates, err := query.CandidatesInInterviewRange(r.Context(), h.DB, q.Get("start"), q.Get("end"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	positions, err := h.DB.ListPositions(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, report.Build(candidates, positions))
}
