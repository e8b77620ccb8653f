package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/emreugurluhr/hrs/internal/config"
	"github.com/emreugurluhr/hrs/internal/events"
	"github.com/emreugurluhr/hrs/internal/httpapi"
	"github.com/emreugurluhr/hrs/internal/query"
	"github.com/emreugurluhr/hrs/internal/scheduler"
	"github.com/emreugurluhr/hrs/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one),
	// else local folder.
	dataDir := os.Getenv("HRS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}
	// Hand-edited config files reach this path unchecked; fail fast
	// rather than start a server on a bad port or debounce.
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config invalid (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	// Store init failure is fatal: there is no degraded mode without data.
	db, err := store.Open(store.Options{
		Path:        cfg.StorePath(),
		ResetOnInit: cfg.Store.ResetOnInit,
	})
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}
	defer db.Close()

	hub := events.NewHub()

	deps := httpapi.Deps{
		DB:          db,
		Hub:         hub,
		Search:      query.NewDebouncer(time.Duration(cfg.Search.DebounceMS) * time.Millisecond),
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	}
	mux := httpapi.NewMux(deps)

	// Periodic upkeep: surface orphaned rows, fold the WAL.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Run(ctx, time.Duration(cfg.Maintenance.IntervalSeconds)*time.Second, "maintenance",
		func(ctx context.Context) error {
			counts, err := db.OrphanCounts(ctx)
			if err != nil {
				return err
			}
			if counts.Any() {
				log.Printf("level=warn msg=\"orphaned rows\" interviews=%d references=%d approvals=%d dangling_position_refs=%d",
					counts.Interviews, counts.References, counts.ApprovalNotes, counts.DanglingPositionRefs)
			}
			return db.Checkpoint(ctx)
		})

	// Bind localhost only; the engine serves the operator's UI, nothing else.
	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{ReadHeaderTimeout: 5 * time.Second}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	srv.Handler = httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	log.Printf("engine listening on http://%s (db=%s)", addr, cfg.StorePath())
	log.Fatal(srv.Serve(ln))
}
