package naver

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrThrottled is returned without a network call while the breaker is
// open. Repeated failures usually mean the platform is rejecting us;
// continuing to hammer it only extends the block.
var ErrThrottled = eris.New("naver: backing off after repeated failures")

// breaker pauses all outbound calls for one cooldown period after a run of
// consecutive failures. Any success resets the run.
type breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	failures  int
	openUntil time.Time
	now       func() time.Time
}

func newBreaker(threshold int, cooldown time.Duration) *breaker {
	return &breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// allow reports whether a call may proceed.
func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.now().Before(b.openUntil)
}

// record tracks one call outcome. Reaching the threshold opens the breaker
// and restarts the count for the next window.
func (b *breaker) record(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !failed {
		b.failures = 0
		return
	}

	b.failures++
	if b.failures >= b.threshold {
		b.openUntil = b.now().Add(b.cooldown)
		b.failures = 0
		zap.L().Warn("naver: repeated failures, pausing outbound calls",
			zap.Duration("cooldown", b.cooldown),
		)
	}
}
