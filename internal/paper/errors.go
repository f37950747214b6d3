package paper

import (
	"context"
	"errors"
	"fmt"

	"github.com/papersmith/papersmith/internal/llm"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindInvalidInput        Kind = "invalid_input"
	KindProviderUnavailable Kind = "provider_unavailable"
	KindProviderTimeout     Kind = "provider_timeout"
	KindMalformedOutput     Kind = "malformed_output"
)

// SnippetLength bounds how much offending provider text an error carries.
const SnippetLength = 200

// ErrInvalidInput indicates the request was rejected before any provider call.
type ErrInvalidInput struct {
	Field  string
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrMalformedOutput indicates the completion could not be turned into a
// valid QuestionPaper. Snippet holds at most SnippetLength runes of the text
// that failed and is meant for server-side logs only.
type ErrMalformedOutput struct {
	Field   string
	Reason  string
	Snippet string
	Err     error
}

func (e *ErrMalformedOutput) Error() string {
	msg := "malformed model output"
	if e.Field != "" {
		msg += fmt.Sprintf(" at %s", e.Field)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

func (e *ErrMalformedOutput) Unwrap() error { return e.Err }

// Classify maps a pipeline error to its Kind. Errors that match no known
// type can only come from the provider path and classify as unavailable.
func Classify(err error) Kind {
	var invalid *ErrInvalidInput
	if errors.As(err, &invalid) {
		return KindInvalidInput
	}
	var malformed *ErrMalformedOutput
	if errors.As(err, &malformed) {
		return KindMalformedOutput
	}
	var timeout *llm.ErrProviderTimeout
	if errors.As(err, &timeout) || errors.Is(err, context.DeadlineExceeded) {
		return KindProviderTimeout
	}
	return KindProviderUnavailable
}

// snippet returns the first SnippetLength runes of s.
func snippet(s string) string {
	r := []rune(s)
	if len(r) <= SnippetLength {
		return s
	}
	return string(r[:SnippetLength])
}
