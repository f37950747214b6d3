package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is one scripted reply. A non-nil Err is returned instead of
// a response.
type MockResponse struct {
	Text       string
	Usage      Usage
	StopReason string
	Err        error
}

// errScriptExhausted is wrapped in ErrProviderUnavailable when a mock has
// nothing left to say.
var errScriptExhausted = errors.New("mock script exhausted")

// MockProvider replays a script of responses in order and records every
// request it receives. Once the script runs out it answers with the
// fallback, or fails as provider-unavailable when there is none.
//
// It is safe for concurrent use, which lets `papersmith serve` run against
// it offline with llm.provider=mock.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockResponse
	fallback *MockResponse
	requests []Request
}

// NewMockProvider returns a MockProvider that plays script once.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// WithFallback sets the reply used after the script is exhausted.
func (m *MockProvider) WithFallback(resp MockResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &resp
	return m
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	var next MockResponse
	switch {
	case len(m.script) > 0:
		next, m.script = m.script[0], m.script[1:]
	case m.fallback != nil:
		next = *m.fallback
	default:
		return nil, &ErrProviderUnavailable{Err: errScriptExhausted}
	}
	if next.Err != nil {
		return nil, next.Err
	}

	resp := &Response{
		Text:       next.Text,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: next.StopReason,
	}
	if resp.StopReason == "" {
		resp.StopReason = "end"
	}
	return resp, nil
}

// Requests returns a copy of the requests received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
