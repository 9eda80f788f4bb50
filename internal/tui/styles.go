package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Padding(1, 2)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)
