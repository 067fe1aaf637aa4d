package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vocabmark/vocabmark/internal/notes"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#6B7280")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	inkColor       = lipgloss.Color("#111827")

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	// Messages
	userLabelStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	successMsgStyle = lipgloss.NewStyle().
			Foreground(successColor)

	systemMsgStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	errorMsgStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	quoteStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Italic(true).
			Padding(0, 2)

	pageTitleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Underline(true)

	noteMetaStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// Input area
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(primaryColor)
)

// markStyle renders marked words the way the page shows them: bold on the
// highlight color.
func markStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(notes.TerminalHex(color))).
		Foreground(inkColor).
		Bold(true)
}

// noteStyle renders a note's text on its own pastel color.
func noteStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(notes.TerminalHex(color))).
		Foreground(inkColor).
		Padding(0, 1)
}
