package render

import "charm.land/lipgloss/v2"

// Palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Accent  = lipgloss.Color("#F97316") // Orange
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
	Warning = lipgloss.Color("#F43F5E") // Rose
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	partStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent).
			MarginTop(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Border)

	numberStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Right)

	questionStyle = lipgloss.NewStyle().
			Foreground(Text)

	orStyle = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Italic(true)
)
