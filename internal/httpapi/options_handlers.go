package httpapi

import (
	"net/http"

	"github.com/emreugurluhr/hrs/internal/domain"
)

type OptionsHandler struct{}

// Options serves the fixed choice lists the forms render.
func (h OptionsHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"collarTypes":        []string{domain.CollarBlue, domain.CollarWhite},
		"results":            []string{domain.ResultPositive, domain.ResultNegative},
		"militaryStatus":     domain.MilitaryStatusOptions,
		"education":          domain.EducationOptions,
		"applicationSources": domain.ApplicationSourceOptions,
		"rejectionReasons":   domain.RejectionReasonOptions,
	})
}
