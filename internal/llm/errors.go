package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable, or
// rejected the request (missing credential, auth failure, non-2xx status).
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrProviderTimeout indicates the deadline elapsed before the provider
// responded. The in-flight call, if any, has been abandoned.
type ErrProviderTimeout struct {
	After time.Duration
	Err   error
}

func (e *ErrProviderTimeout) Error() string {
	if e.After > 0 {
		return fmt.Sprintf("LLM provider timed out after %s", e.After)
	}
	return "LLM provider timed out"
}

func (e *ErrProviderTimeout) Unwrap() error { return e.Err }
