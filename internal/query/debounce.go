package query

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Debouncer spaces out search issuance. The UI fires a request per
// keystroke; Wait delays bursts so at most one search runs per gap, the
// stand-in this system uses instead of in-flight cancellation (searches are
// cheap point/range lookups, cancelling them buys nothing).
type Debouncer struct {
	lim *rate.Limiter
}

// NewDebouncer allows one issuance per gap with a burst of one. A zero or
// negative gap disables debouncing.
func NewDebouncer(gap time.Duration) *Debouncer {
	if gap <= 0 {
		return &Debouncer{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Debouncer{lim: rate.NewLimiter(rate.Every(gap), 1)}
}

// Wait blocks until this request may be issued or ctx ends. Requests are
// never dropped, only delayed; the last keystroke's search always runs.
func (d *Debouncer) Wait(ctx context.Context) error {
	return d.lim.Wait(ctx)
}
