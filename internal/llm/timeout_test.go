package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// stuckProvider ignores cancellation and only returns once released.
type stuckProvider struct {
	release chan struct{}
	calls   int
}

func (s *stuckProvider) Generate(_ context.Context, _ Request) (*Response, error) {
	s.calls++
	<-s.release
	return &Response{Text: "late"}, nil
}

func TestTimeout_AbandonsStuckProvider(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	stuck := &stuckProvider{release: make(chan struct{})}
	p := WithTimeout(stuck, 20*time.Millisecond)

	start := time.Now()
	resp, err := p.Generate(context.Background(), Request{})
	elapsed := time.Since(start)

	if resp != nil {
		t.Fatalf("expected no response, got %+v", resp)
	}
	var timeout *ErrProviderTimeout
	if !errors.As(err, &timeout) {
		t.Fatalf("expected ErrProviderTimeout, got: %T (%v)", err, err)
	}
	if timeout.After != 20*time.Millisecond {
		t.Fatalf("expected After=20ms, got %s", timeout.After)
	}
	if elapsed > time.Second {
		t.Fatalf("caller blocked for %s", elapsed)
	}

	// The abandoned call finishes in the background and its result is dropped.
	close(stuck.release)
}

func TestTimeout_PassesThroughFastResult(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "fast"})
	p := WithTimeout(mock, time.Second)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "fast" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
}

func TestTimeout_CallerCancellation(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	stuck := &stuckProvider{release: make(chan struct{})}
	p := WithTimeout(stuck, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	close(stuck.release)
}

func TestTimeout_ProviderErrorAfterDeadlineIsTimeout(t *testing.T) {
	// A provider that honours ctx and reports the raw context error.
	p := WithTimeout(providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		<-ctx.Done()
		return nil, &ErrProviderUnavailable{Err: ctx.Err()}
	}), 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	var timeout *ErrProviderTimeout
	if !errors.As(err, &timeout) {
		t.Fatalf("expected ErrProviderTimeout, got: %T (%v)", err, err)
	}
}

type providerFunc func(ctx context.Context, req Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
