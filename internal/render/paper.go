// Package render formats question papers for the terminal.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/papersmith/papersmith/internal/paper"
)

const (
	numberWidth  = 5
	defaultWidth = 80
	minWidth     = 40
)

// Paper renders p as a numbered exam paper wrapped to width columns.
// Numbering runs continuously across the three parts. Sections whose item
// count differs from the quota get a note under their heading.
func Paper(p *paper.QuestionPaper, subject string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	width = max(width, minWidth)
	textWidth := width - numberWidth - 1

	title := "Question Paper"
	if s := strings.TrimSpace(subject); s != "" {
		title += ": " + s
	}

	notes := make(map[string]string)
	for _, a := range paper.CheckCardinality(p) {
		notes[a.Part] = fmt.Sprintf("expected %d questions, model returned %d", a.Expected, a.Got)
	}

	blocks := []string{titleStyle.Render(title)}
	n := 1

	blocks = append(blocks, section("Part A", "Answer all questions", notes["partA"], width))
	for _, q := range p.PartA {
		blocks = append(blocks, question(n, q, textWidth))
		n++
	}

	blocks = append(blocks, section("Part B", "Answer either (a) or (b) of each question", notes["partB"], width))
	for _, pair := range p.PartB {
		blocks = append(blocks,
			question(n, "(a) "+pair.A, textWidth),
			strings.Repeat(" ", numberWidth+1)+orStyle.Render("OR"),
			question(0, "(b) "+pair.B, textWidth),
		)
		n++
	}

	blocks = append(blocks, section("Part C", "Answer in detail", notes["partC"], width))
	for _, q := range p.PartC {
		blocks = append(blocks, question(n, q, textWidth))
		n++
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func section(name, instruction, note string, width int) string {
	lines := []string{
		partStyle.Width(width).Render(strings.ToUpper(name)),
		subtitleStyle.Render(instruction),
	}
	if note != "" {
		lines = append(lines, noteStyle.Render("note: "+note))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// question renders one numbered question with a hanging indent. A zero
// number leaves the label blank.
func question(n int, text string, width int) string {
	label := ""
	if n > 0 {
		label = fmt.Sprintf("%d.", n)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		numberStyle.Width(numberWidth).Render(label),
		" ",
		questionStyle.Width(width).Render(text),
	)
}
