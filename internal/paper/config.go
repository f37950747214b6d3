package paper

import "github.com/papersmith/papersmith/internal/llm"

// Config controls prompt gating and the provider call made by the Generator.
type Config struct {
	// MinSyllabusLength is the minimum trimmed syllabus length, in runes.
	MinSyllabusLength int

	// Options are the per-call sampling parameters.
	Options llm.Options

	// StructuredOutput sends PaperSchema to the provider as a native JSON
	// mode hint. The completion is validated either way.
	StructuredOutput bool
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MinSyllabusLength: 50,
		Options: llm.Options{
			Temperature: 0.4,
			MaxTokens:   2048,
		},
	}
}
