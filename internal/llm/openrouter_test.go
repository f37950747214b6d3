package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"})
	if err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestNewOpenRouterProvider_ModelsPassThrough(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.model != "gpt-4o-mini" {
		t.Errorf("model = %q, want pass-through", p.model)
	}
	if got := resolveModel("claude-haiku", p.models); got != "claude-haiku" {
		t.Errorf("override = %q, want pass-through", got)
	}
}

func TestOpenRouterProvider_SendsAttributionHeaders(t *testing.T) {
	var referer, title, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   "google/gemini-2.0-flash-exp",
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "ok"}, "finish_reason": "stop"}},
			"usage":   map[string]int{"prompt_tokens": 3, "completion_tokens": 1, "total_tokens": 4},
		})
	}))
	defer srv.Close()

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.0-flash-exp",
		BaseURL: srv.URL,
		AppURL:  "https://exams.example.edu",
		AppName: "papersmith",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := Complete(context.Background(), p, "hi", Options{MaxTokens: 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok" {
		t.Errorf("text = %q, want ok", text)
	}
	if referer != "https://exams.example.edu" || title != "papersmith" {
		t.Errorf("attribution headers = %q / %q", referer, title)
	}
	if auth != "Bearer sk-or-test" {
		t.Errorf("authorization = %q", auth)
	}
}

func TestOpenRouterHeaders_OmittedWhenUnset(t *testing.T) {
	if h := openRouterHeaders(OpenRouterConfig{}); len(h) != 0 {
		t.Errorf("expected no headers, got %v", h)
	}
}
