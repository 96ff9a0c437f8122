// Package style holds the terminal styles used by dotsync's user-facing
// output.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/dotsync/pkg/types"
)

// Base colors
var (
	SuccessColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#F9A825", Dark: "#FFD54F"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#64B5F6"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Italic(true)
)

// State indicators
var (
	LinkedIndicator   = SuccessStyle.Render("✓")
	ConflictIndicator = ErrorStyle.Render("✗")
	UnlinkedIndicator = WarningStyle.Render("!")
	MissingIndicator  = MutedStyle.Render("○")
)

// StateIndicator returns the one-character indicator for a link state
func StateIndicator(state types.LinkState) string {
	switch state {
	case types.StateLinked:
		return LinkedIndicator
	case types.StateConflict:
		return ConflictIndicator
	case types.StateUnlinked:
		return UnlinkedIndicator
	default:
		return MissingIndicator
	}
}
