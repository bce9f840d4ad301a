package app

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum spacing between successive evaluator calls. The
// analyzer waits on it immediately before every evaluator request and nowhere
// else, so swapping the pacing policy never touches classification code.
type Pacer interface {
	Wait(ctx context.Context) error
}

type ratePacer struct {
	lim *rate.Limiter
}

// NewPacer returns a Pacer that allows one call per minInterval, with the
// first call passing immediately. A non-positive interval disables pacing.
func NewPacer(minInterval time.Duration) Pacer {
	if minInterval <= 0 {
		return ratePacer{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return ratePacer{lim: rate.NewLimiter(rate.Every(minInterval), 1)}
}

func (p ratePacer) Wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}
