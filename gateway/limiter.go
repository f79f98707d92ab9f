package gateway

import (
	"context"

	"golang.org/x/time/rate"
)

// SubmitLimiter paces batch submissions to stay inside venue rate
// limits.
type SubmitLimiter struct {
	limiter *rate.Limiter
}

// NewSubmitLimiter creates a limiter allowing perSecond submissions
// with the given burst. Non-positive values fall back to 1.
func NewSubmitLimiter(perSecond float64, burst int) *SubmitLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &SubmitLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until a submission slot is available or ctx is canceled.
func (l *SubmitLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
