package paper

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/papersmith/papersmith/internal/llm"
)

// Purpose labels provider calls made by the Generator in logs and the
// usage ledger.
const Purpose = "question-paper"

// Generator runs the prompt, provider, extract pipeline for one request.
// It holds no per-request state and is safe for concurrent use.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a Generator. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

// Generate produces a validated QuestionPaper or a classified error. Invalid
// input is rejected before the provider is called. A partial paper is never
// returned.
func (g *Generator) Generate(ctx context.Context, req Request) (*QuestionPaper, error) {
	prompt, err := BuildPrompt(req, g.config)
	if err != nil {
		return nil, err
	}

	if llm.PurposeFrom(ctx) == llm.UnknownPurpose {
		ctx = llm.WithPurpose(ctx, Purpose)
	}

	opts := g.config.Options
	if g.config.StructuredOutput {
		opts.Schema = PaperSchema
	}

	text, err := llm.Complete(ctx, g.provider, prompt, opts)
	if err != nil {
		return nil, fmt.Errorf("question paper generation failed: %w", err)
	}

	paper, err := Extract(text)
	if err != nil {
		var malformed *ErrMalformedOutput
		if errors.As(err, &malformed) {
			g.logger.Warn("malformed model output",
				zap.String("field", malformed.Field),
				zap.String("reason", malformed.Reason),
				zap.String("snippet", malformed.Snippet),
				zap.Int("completion_chars", len(text)),
			)
		}
		return nil, err
	}

	for _, a := range CheckCardinality(paper) {
		g.logger.Warn("question paper section count differs from quota",
			zap.String("part", a.Part),
			zap.Int("expected", a.Expected),
			zap.Int("got", a.Got),
		)
	}

	return paper, nil
}
