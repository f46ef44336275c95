package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the frame chrome.
const (
	ColorAccent    = "86"  // cyan/green, titles and the active tab
	ColorHighlight = "205" // magenta, focused borders
	ColorDanger    = "196" // red, errors
	ColorMuted     = "241" // gray, idle borders and hints
	ColorText      = "252" // light gray, normal text
	ColorWarning   = "208" // orange, warnings
)

// Styles contains shared style definitions for the header, status bar, and
// pane frames.
var Styles = struct {
	TabActive     lipgloss.Style // active tab name in the header
	TabInactive   lipgloss.Style // other tab names
	HeaderState   lipgloss.Style // playback state glyph and song
	HeaderMuted   lipgloss.Style // volume, separators
	BorderIdle    lipgloss.Style // pane frame, unfocused
	BorderFocused lipgloss.Style // pane frame around the focused leaf
	StatusInfo    lipgloss.Style
	StatusWarn    lipgloss.Style
	StatusError   lipgloss.Style
	Progress      lipgloss.Style // elapsed portion of the progress bar
	ProgressBg    lipgloss.Style // remaining portion
}{
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	HeaderState: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	HeaderMuted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	BorderIdle: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	BorderFocused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	StatusWarn: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	StatusError: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Progress: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	ProgressBg: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}
