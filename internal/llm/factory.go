package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papersmith/papersmith/internal/store"
)

// NewProvider creates a Provider from configuration.
// The result is wrapped as: caller → retry → timeout → logging → base.
// eventRepo may be nil, in which case no usage ledger is written.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "mock":
		mock := NewMockProvider()
		if cfg.Mock.Response != "" {
			mock.WithFallback(MockResponse{Text: cfg.Mock.Response})
		}
		base = mock
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, logger, eventRepo)
	bounded := WithTimeout(logged, cfg.Timeout)
	return WithRetry(bounded, cfg.Retry), nil
}
