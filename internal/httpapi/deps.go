package httpapi

import (
	"sync/atomic"

	"github.com/emreugurluhr/hrs/internal/config"
	"github.com/emreugurluhr/hrs/internal/events"
	"github.com/emreugurluhr/hrs/internal/query"
	"github.com/emreugurluhr/hrs/internal/store"
)

type Deps struct {
	DB *store.DB

	Hub *events.Hub

	// Search issuance pacing; never nil once wired by main.
	Search *query.Debouncer

	// Atomic store so config reloads don't race handlers.
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

func (d Deps) cfg() config.Config {
	return d.CfgVal.Load().(config.Config)
}
