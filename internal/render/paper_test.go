package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papersmith/papersmith/internal/paper"
)

func fullPaper() *paper.QuestionPaper {
	p := &paper.QuestionPaper{PartC: []string{"Discuss the evolution of management."}}
	for i := 1; i <= paper.PartAQuota; i++ {
		p.PartA = append(p.PartA, fmt.Sprintf("Define term %d.", i))
	}
	for i := 1; i <= paper.PartBQuota; i++ {
		p.PartB = append(p.PartB, paper.EitherOr{A: fmt.Sprintf("Explain %d.", i), B: fmt.Sprintf("Discuss %d.", i)})
	}
	return p
}

func TestPaper_NumbersAcrossParts(t *testing.T) {
	out := ansi.Strip(Paper(fullPaper(), "Principles of Management", 100))

	assert.Contains(t, out, "Question Paper: Principles of Management")
	for _, part := range []string{"PART A", "PART B", "PART C"} {
		assert.Contains(t, out, part)
	}
	assert.Contains(t, out, "1. Define term 1.")
	assert.Contains(t, out, "10. Define term 10.")
	assert.Contains(t, out, "11. (a) Explain 1.")
	assert.Contains(t, out, "(b) Discuss 1.")
	assert.Contains(t, out, "15. (a) Explain 5.")
	assert.Contains(t, out, "16. Discuss the evolution of management.")
	ors := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "OR" {
			ors++
		}
	}
	assert.Equal(t, paper.PartBQuota, ors, "one OR per pair")
	assert.NotContains(t, out, "note:")
}

func TestPaper_NotesShortSections(t *testing.T) {
	p := fullPaper()
	p.PartA = p.PartA[:7]
	p.PartC = nil

	out := ansi.Strip(Paper(p, "", 0))

	assert.Contains(t, out, "Question Paper")
	assert.NotContains(t, out, "Question Paper:")
	assert.Contains(t, out, "note: expected 10 questions, model returned 7")
	assert.Contains(t, out, "note: expected 1 questions, model returned 0")
}

func TestPaper_WrapsToWidth(t *testing.T) {
	p := &paper.QuestionPaper{
		PartA: []string{strings.Repeat("management ", 30)},
		PartB: []paper.EitherOr{},
		PartC: []string{},
	}

	out := ansi.Strip(Paper(p, "", 60))
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 60, "line %q", line)
	}
}
