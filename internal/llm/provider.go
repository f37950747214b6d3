package llm

import (
	"context"
)

// Provider is the core abstraction for LLM interaction.
// Every backend reduces to the same call: submit a request, receive text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its raw text output.
	// The text is never validated here; an empty completion is not an error.
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional.
	System string

	// Messages is the conversation. Question paper generation always sends
	// a single user message.
	Messages []Message

	// Schema, when set, is passed to the provider's native structured
	// output mechanism as a hint. The caller still validates the text.
	Schema *Schema

	// Model overrides the provider's configured model when non-empty.
	Model string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema, e.g. "question-paper".
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Text is the raw completion exactly as the provider returned it.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Options are the per-call sampling parameters for Complete.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int

	// Schema is forwarded as Request.Schema.
	Schema *Schema
}

// Complete submits a single prompt and returns the raw completion text.
func Complete(ctx context.Context, p Provider, prompt string, opts Options) (string, error) {
	resp, err := p.Generate(ctx, Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Schema:      opts.Schema,
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
