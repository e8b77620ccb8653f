package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs
// srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Candidates and their child records
	ca := CandidatesHandler{d}
	mux.HandleFunc("/candidates", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ca.List,
		http.MethodPost: ca.Create,
	}))
	mux.HandleFunc("/candidates/", ca.ServeByPath)

	// Positions
	po := PositionsHandler{d}
	mux.HandleFunc("/positions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  po.List,
		http.MethodPost: po.Create,
	}))
	mux.HandleFunc("/positions/", po.ServeByPath)

	// Dashboard
	re := ReportsHandler{d}
	mux.HandleFunc("/reports/dashboard", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: re.Dashboard,
	}))

	// CV attachments
	at := AttachmentsHandler{d}
	mux.HandleFunc("/attachments", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: at.Upload,
	}))
	mux.HandleFunc("/attachments/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: at.GetByPath,
	}))

	// Form option lists
	op := OptionsHandler{}
	mux.HandleFunc("/options", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: op.Options,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Maintenance
	ma := MaintenanceHandler{d}
	mux.HandleFunc("/maintenance/orphans", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ma.Orphans,
	}))
	mux.HandleFunc("/maintenance/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ma.Checkpoint,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
