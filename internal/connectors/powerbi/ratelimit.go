package powerbi

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces refresh requests.
// A nil *RateLimiter never blocks.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained with a burst of one.
// Returns nil (no pacing) when requestsPerSecond is not positive.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until the next request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

// Limit returns the configured rate, or rate.Inf when pacing is disabled.
func (r *RateLimiter) Limit() rate.Limit {
	if r == nil {
		return rate.Inf
	}
	return r.limiter.Limit()
}
