// Package styles holds the lipgloss styles used for human-readable CLI output.
package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tasktracker/internal/config"
)

var (
	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For ids and field labels like "email:"
	ValueStyle    lipgloss.Style // For field values

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
)

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Success))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Error))
}

// Reset clears every style, leaving plain text output.
func Reset() {
	TitleStyle = lipgloss.NewStyle()
	SubtitleStyle = lipgloss.NewStyle()
	LabelStyle = lipgloss.NewStyle()
	ValueStyle = lipgloss.NewStyle()
	SuccessStyle = lipgloss.NewStyle()
	ErrorStyle = lipgloss.NewStyle()
}

// Check renders a success mark followed by msg
func Check(msg string) string {
	return SuccessStyle.Render("✓") + " " + msg
}
