package listing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between outbound platform calls. The
// same instance must be shared across every fetch path of a run so the
// interval holds globally, including under bounded parallelism.
type Pacer interface {
	Wait(ctx context.Context) error
}

type intervalPacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a pacer that releases one call per minInterval.
// A non-positive interval yields a no-op pacer (used by tests).
func NewPacer(minInterval time.Duration) Pacer {
	if minInterval <= 0 {
		return noopPacer{}
	}
	return &intervalPacer{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

func (p *intervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type noopPacer struct{}

func (noopPacer) Wait(context.Context) error { return nil }
