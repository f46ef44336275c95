package panes

import "github.com/charmbracelet/lipgloss"

// Theme colors used across panes
const (
	colorAccent  = "86"  // cyan/green - titles, playing marker
	colorCursor  = "205" // magenta - selected rows
	colorMuted   = "241" // gray - dimmed text, hints
	colorText    = "252" // light gray - normal text
	colorDanger  = "196" // red - errors
	colorWarning = "208" // orange - warnings
)

// Styles contains shared style definitions used across panes.
var Styles = struct {
	Title    lipgloss.Style // pane titles (bold accent)
	Selected lipgloss.Style // row under the cursor
	Playing  lipgloss.Style // currently playing row marker
	Normal   lipgloss.Style // normal rows
	Muted    lipgloss.Style // dimmed text, counts, hints
	Dir      lipgloss.Style // directory entries in browsers
	Empty    lipgloss.Style // empty state text
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorCursor)).
		Bold(true),
	Playing: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorAccent)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted)),
	Dir: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorAccent)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted)).
		Italic(true),
}
