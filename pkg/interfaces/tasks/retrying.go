package tasks

import (
	"context"
	"time"
)

// Backoff computes the delay before the next retry attempt.
type Backoff interface {
	Next(attempt int) time.Duration
}

// ExponentialBackoff grows delays by powers of two, capped at Max.
type ExponentialBackoff struct {
	Base time.Duration
	Max  time.Duration
}

// Next returns the delay for the given attempt (1-based).
func (b ExponentialBackoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := b.Base
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	delay := base << (attempt - 1)
	if b.Max > 0 && delay > b.Max {
		return b.Max
	}
	return delay
}

// Retrying wraps a runner and retries each failed task before giving up.
// Useful for the stale-linkset cleanup writes, which race concurrent readers
// of the same row and occasionally lose.
type Retrying struct {
	Inner    Runner
	Attempts int
	Backoff  Backoff
	OnError  OnError
}

var _ Runner = (*Retrying)(nil)

func (r *Retrying) Run(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	inner := r.Inner
	if inner == nil {
		inner = &Detached{}
	}
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 3
	}
	backoff := r.Backoff
	if backoff == nil {
		backoff = ExponentialBackoff{Base: 100 * time.Millisecond, Max: 5 * time.Second}
	}

	inner.Run(ctx, name, func(ctx context.Context) error {
		var err error
		for attempt := 1; attempt <= attempts; attempt++ {
			if err = fn(ctx); err == nil {
				return nil
			}
			if attempt == attempts {
				break
			}
			select {
			case <-time.After(backoff.Next(attempt)):
			case <-ctx.Done():
				return err
			}
		}
		if r.OnError != nil {
			r.OnError(name, err)
		}
		return err
	})
}
