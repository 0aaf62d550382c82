package tasks

import "context"

// Runner executes best-effort background work detached from the caller. The
// caller never waits on the outcome; failures are the task's own concern.
type Runner interface {
	Run(ctx context.Context, name string, fn func(ctx context.Context) error)
}

// OnError receives failures from detached tasks.
type OnError func(name string, err error)

// Detached runs each task in its own goroutine with a context no longer tied
// to the caller's cancellation.
type Detached struct {
	OnError OnError
}

var _ Runner = (*Detached)(nil)

func (d *Detached) Run(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	go func() {
		// The response path must never be gated by, or fail with, this work.
		if err := fn(context.WithoutCancel(ctx)); err != nil && d.OnError != nil {
			d.OnError(name, err)
		}
	}()
}

// Sync executes tasks inline; used by tests that need deterministic ordering.
type Sync struct {
	OnError OnError
}

var _ Runner = (*Sync)(nil)

func (s *Sync) Run(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	if err := fn(ctx); err != nil && s.OnError != nil {
		s.OnError(name, err)
	}
}

// Nop discards tasks (used when background writes are disabled).
type Nop struct{}

var _ Runner = (*Nop)(nil)

func (n *Nop) Run(ctx context.Context, name string, fn func(ctx context.Context) error) {}
