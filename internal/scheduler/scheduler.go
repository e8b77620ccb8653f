// Package scheduler drives the engine's periodic upkeep (orphan-count
// logging and WAL checkpoints).
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Run executes task once right away, then on every interval tick until ctx
// ends. Task errors are logged and do not stop the loop; upkeep has to
// survive transient store errors.
func Run(ctx context.Context, interval time.Duration, name string, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	runOnce(ctx, name, task)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			runOnce(ctx, name, task)
		}
	}
}

func runOnce(ctx context.Context, name string, task Task) {
	start := time.Now()
	if err := task(ctx); err != nil {
		log.Printf("level=warn msg=\"task failed\" task=%s err=%v", name, err)
		return
	}
	log.Printf("level=info msg=\"task done\" task=%s dur_ms=%d", name, time.Since(start).Milliseconds())
}
