package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider returns an OpenAI-compatible provider pointed at
// OpenRouter. Model IDs are vendor-prefixed ("google/gemini-2.0-flash-exp")
// and passed through unchanged. AppURL and AppName, when set, are sent as
// the attribution headers OpenRouter uses for its app rankings.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	var doer openai.HTTPDoer
	if h := openRouterHeaders(cfg); len(h) > 0 {
		doer = &headerDoer{inner: &http.Client{}, headers: h}
	}

	return newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, nil, doer), nil
}

func openRouterHeaders(cfg OpenRouterConfig) http.Header {
	h := http.Header{}
	if cfg.AppURL != "" {
		h.Set("HTTP-Referer", cfg.AppURL)
	}
	if cfg.AppName != "" {
		h.Set("X-Title", cfg.AppName)
	}
	return h
}

// headerDoer adds fixed headers to every outbound request.
type headerDoer struct {
	inner   openai.HTTPDoer
	headers http.Header
}

func (d *headerDoer) Do(req *http.Request) (*http.Response, error) {
	for k, vs := range d.headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	return d.inner.Do(req)
}
