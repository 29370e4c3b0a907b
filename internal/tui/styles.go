package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Color Palette
	// Primary: Sage - borders and titles
	// Accent: Saddle tan - highlighted entries and focused fields
	// Success/Error: verdict colors
	// Text: White/Gray hierarchy

	primary    = lipgloss.Color("#8fbf7f") // Sage
	accent     = lipgloss.Color("#d9a35b") // Tan
	success    = lipgloss.Color("#00ff87") // Green
	danger     = lipgloss.Color("#ff5f5f") // Red
	textNormal = lipgloss.Color("#e4e4e4") // Light gray
	textMuted  = lipgloss.Color("#6c757d") // Gray
	textDim    = lipgloss.Color("#495057") // Dark gray

	// Every screen is a single bordered box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	// Menu entries
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(accent).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(textNormal)

	// Chosen-model marker
	markerStyle = lipgloss.NewStyle().
			Foreground(success)

	// Text fields
	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(textDim).
			Padding(0, 1)

	focusedFieldStyle = fieldStyle.
				BorderForeground(accent)

	promptStyle = lipgloss.NewStyle().
			Foreground(textNormal)

	// Status line
	statusStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)

	// End-of-round verdicts
	correctTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(success)

	incorrectTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(danger)

	replyStyle = lipgloss.NewStyle().
			Foreground(textNormal).
			Italic(true)

	// Help text styles
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(textNormal)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(textMuted)
)
