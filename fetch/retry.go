package fetch

import (
	"context"
	"time"
)

// DefaultBackoffStep is the multiplier used by the default delay policy:
// the wait before retrying attempt N is N * DefaultBackoffStep.
const DefaultBackoffStep = 2 * time.Second

// Backoff computes the wait before the retry that follows the given
// attempt index. The three variants are FixedBackoff, BackoffFunc and the
// package default used when RetryPolicy.Backoff is nil.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// FixedBackoff waits the same duration between every attempt.
type FixedBackoff time.Duration

func (b FixedBackoff) Delay(int) time.Duration {
	return time.Duration(b)
}

// BackoffFunc adapts a function to the Backoff interface.
type BackoffFunc func(attempt int) time.Duration

func (f BackoffFunc) Delay(attempt int) time.Duration {
	return f(attempt)
}

// DefaultBackoff is the delay policy applied when none is configured.
var DefaultBackoff Backoff = BackoffFunc(func(attempt int) time.Duration {
	return time.Duration(attempt) * DefaultBackoffStep
})

func (p *RetryPolicy) delay(attempt int) time.Duration {
	if p.Backoff != nil {
		return p.Backoff.Delay(attempt)
	}
	return DefaultBackoff.Delay(attempt)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
