package llm

import (
	"fmt"
	"os"
	"time"
)

// MaxRetries is the ceiling on caller-layered retries.
const MaxRetries = 2

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openai", "gemini", "anthropic", "openrouter", "mock"
	Provider string `mapstructure:"provider"`

	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Mock       MockConfig       `mapstructure:"mock"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Model overrides the selected provider's model on every call.
	Model string `mapstructure:"model"`

	// MaxTokens is the response token ceiling.
	MaxTokens int `mapstructure:"max_tokens"`

	// Temperature controls sampling randomness, 0.0 - 1.0.
	Temperature float64 `mapstructure:"temperature"`

	// StructuredOutput forwards the response schema to the provider's
	// native JSON mode.
	StructuredOutput bool `mapstructure:"structured_output"`

	// Timeout is the maximum duration for a single provider attempt.
	Timeout time.Duration `mapstructure:"timeout"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "gemini-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `mapstructure:"base_url"` // Default: "https://openrouter.ai/api/v1"
	AppURL  string `mapstructure:"app_url"`  // Sent as HTTP-Referer.
	AppName string `mapstructure:"app_name"` // Sent as X-Title.
}

// MockConfig configures the offline provider. Response is returned for
// every call; when empty each call fails as provider-unavailable.
type MockConfig struct {
	Response string `mapstructure:"response"`
}

// RetryConfig configures retry behavior for transient failures.
// MaxRetries of zero disables retry.
type RetryConfig struct {
	MaxRetries  int           `mapstructure:"max_retries"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model:   "google/gemini-2.0-flash-exp",
			BaseURL: defaultOpenRouterBaseURL,
			AppName: "papersmith",
		},
		Retry: RetryConfig{
			MaxRetries:  0,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		MaxTokens:   2048,
		Temperature: 0.4,
		Timeout:     60 * time.Second,
	}
}

// ApplyStandardEnv fills an empty credential for the selected provider
// from the vendor's conventional environment variable.
func (c *Config) ApplyStandardEnv() {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			c.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			c.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			c.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
		}
	}
}

// Validate checks that the selected provider has its required API key set
// and that the sampling and timeout settings are usable.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("llm.openai.api_key (or OPENAI_API_KEY) is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("llm.gemini.api_key (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("llm.anthropic.api_key (or ANTHROPIC_API_KEY) is required for the anthropic provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("llm.openrouter.api_key (or OPENROUTER_API_KEY) is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("llm.temperature must be within [0, 1], got %v", c.Temperature)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Retry.MaxRetries < 0 || c.Retry.MaxRetries > MaxRetries {
		return fmt.Errorf("llm.retry.max_retries must be between 0 and %d, got %d", MaxRetries, c.Retry.MaxRetries)
	}
	return nil
}

// Options returns the per-call sampling parameters derived from c.
func (c Config) Options() Options {
	return Options{
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}

// ProviderModel returns the model the selected provider is configured with.
func (c Config) ProviderModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case "openai":
		return c.OpenAI.Model
	case "gemini":
		return c.Gemini.Model
	case "anthropic":
		return c.Anthropic.Model
	case "openrouter":
		return c.OpenRouter.Model
	}
	return c.Provider
}
