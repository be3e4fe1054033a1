package pager

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces consecutive external calls at least delay apart.
// It is a courtesy throttle: one constant delay, no adaptive backoff.
// A nil Pacer never waits.
type Pacer struct {
	delay   time.Duration
	limiter *rate.Limiter
}

// NewPacer creates a pacer. A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{
		delay:   delay,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Wait blocks until the next call may be made.
// The first call through a fresh pacer never waits.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

// Delay returns the configured spacing.
func (p *Pacer) Delay() time.Duration {
	if p == nil {
		return 0
	}
	return p.delay
}
