package crawler

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestFixedDelay tests the fixed delay pacer.
func TestFixedDelay(t *testing.T) {
	t.Parallel()

	t.Run("waits for the delay", func(t *testing.T) {
		t.Parallel()

		p := NewFixedDelay(50 * time.Millisecond)
		start := time.Now()
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
			t.Errorf("expected to wait at least 50ms, waited %s", elapsed)
		}
		if p.Delay() != 50*time.Millisecond {
			t.Errorf("expected delay 50ms, got %s", p.Delay())
		}
	})

	t.Run("zero delay returns immediately", func(t *testing.T) {
		t.Parallel()

		if err := NewFixedDelay(0).Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewFixedDelay(time.Hour).Wait(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestRateLimit tests the token bucket pacer.
func TestRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("first wait is not free", func(t *testing.T) {
		t.Parallel()

		p := NewRateLimit(20) // one token every 50ms
		start := time.Now()
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
			t.Errorf("expected to wait for a token, waited %s", elapsed)
		}
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := NewRateLimit(0.001).Wait(ctx); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

// TestNoPause tests the no-op pacer.
func TestNoPause(t *testing.T) {
	t.Parallel()

	if err := (NoPause{}).Wait(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
