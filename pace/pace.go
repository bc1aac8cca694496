// Package pace provides a fixed-interval gate used for client-side rate
// limiting against the catalog's request ceiling.
package pace

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate admits one call per interval. A nil Gate admits everything, which
// lets tests disable pacing without touching business logic.
type Gate struct {
	limiter *rate.Limiter
}

// NewGate returns a gate for the given minimum interval between calls.
// A non-positive interval yields a nil, always-open gate.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		return nil
	}
	return &Gate{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the interval since the last admitted call has
// elapsed, or until ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	if g == nil || g.limiter == nil {
		return nil
	}
	return g.limiter.Wait(ctx)
}
