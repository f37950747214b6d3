package llm

import (
	"context"
	"errors"
	"time"
)

// TimeoutProvider is a decorator that bounds every call with a deadline
// and stops waiting as soon as the context is done, even when the inner
// provider does not honour cancellation. A late result is discarded.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-call deadline.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	return &TimeoutProvider{inner: p, timeout: timeout}
}

type generateResult struct {
	resp *Response
	err  error
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	// Buffered so the worker never blocks on send after we stop listening.
	done := make(chan generateResult, 1)
	go func() {
		resp, err := t.inner.Generate(ctx, req)
		done <- generateResult{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			var timeout *ErrProviderTimeout
			if !errors.As(r.err, &timeout) {
				return nil, &ErrProviderTimeout{After: t.timeout, Err: r.err}
			}
			timeout.After = t.timeout
		}
		return r.resp, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &ErrProviderTimeout{After: t.timeout, Err: ctx.Err()}
		}
		return nil, ctx.Err()
	}
}
