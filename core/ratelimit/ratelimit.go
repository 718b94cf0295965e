// Package ratelimit paces outbound requests per provider. Each provider gets
// an independent limiter, so a wait for one provider never delays calls to
// another. Bursts beyond the configured rate are smoothed into evenly spaced
// requests rather than rejected; this is deliberate pacing, not admission
// control.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/quillworks/aigate/providers/ai"
)

// DefaultRequestsPerSecond applies to providers with no configured rate.
const DefaultRequestsPerSecond = 1.0

// Limiter enforces a minimum inter-request interval per provider. Safe for
// concurrent use; concurrent callers to the same provider are serialized into
// evenly spaced slots on a monotonic clock.
type Limiter struct {
	mu       sync.Mutex
	rates    map[ai.Provider]float64
	limiters map[ai.Provider]*rate.Limiter
}

// New builds a limiter from per-provider requests-per-second settings.
// Providers absent from rates get DefaultRequestsPerSecond; a zero or
// negative rate means unlimited.
func New(rates map[ai.Provider]float64) *Limiter {
	copied := make(map[ai.Provider]float64, len(rates))
	for p, r := range rates {
		copied[p] = r
	}
	return &Limiter{
		rates:    copied,
		limiters: make(map[ai.Provider]*rate.Limiter),
	}
}

// Wait blocks until the provider's next request slot, or until ctx is done,
// in which case the context error is returned and the slot is not consumed
// permanently (the underlying limiter restores the reservation).
func (l *Limiter) Wait(ctx context.Context, p ai.Provider) error {
	return l.limiterFor(p).Wait(ctx)
}

func (l *Limiter) limiterFor(p ai.Provider) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters[p]; ok {
		return lim
	}

	rps, ok := l.rates[p]
	if !ok {
		rps = DefaultRequestsPerSecond
	}

	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}

	// Burst of one: the first request passes immediately, every subsequent
	// request waits out the full inter-request interval.
	lim := rate.NewLimiter(limit, 1)
	l.limiters[p] = lim
	return lim
}
