package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer pauses between consecutive requests to the same site.
type Pacer interface {
	// Wait blocks until the next request may start or ctx is done.
	Wait(ctx context.Context) error
}

// FixedDelay sleeps for a constant duration on every Wait.
type FixedDelay struct {
	delay time.Duration
}

// NewFixedDelay creates a FixedDelay. A non-positive delay never sleeps.
func NewFixedDelay(d time.Duration) *FixedDelay {
	return &FixedDelay{delay: d}
}

// Wait sleeps for the configured delay.
func (p *FixedDelay) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.delay):
		return nil
	}
}

// Delay returns the configured delay.
func (p *FixedDelay) Delay() time.Duration {
	return p.delay
}

// RateLimit spaces requests with a token bucket of size one.
// Unlike FixedDelay, time spent fetching and parsing counts toward the pause.
type RateLimit struct {
	limiter *rate.Limiter
}

// NewRateLimit creates a RateLimit allowing perSecond requests per second.
// The initial token is consumed so the first Wait is not free.
func NewRateLimit(perSecond float64) *RateLimit {
	limiter := rate.NewLimiter(rate.Limit(perSecond), 1)
	limiter.Allow()
	return &RateLimit{limiter: limiter}
}

// Wait blocks until the limiter grants a token.
func (p *RateLimit) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NoPause never waits. It is meant for tests.
type NoPause struct{}

// Wait returns immediately.
func (NoPause) Wait(ctx context.Context) error {
	return ctx.Err()
}
