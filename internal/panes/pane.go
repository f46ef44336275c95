// Package panes holds the pane implementations and the registry that keeps
// exactly one live instance per pane type for the process lifetime.
package panes

import (
	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/mpd"
)

// Type identifies a pane kind. The set is closed; configuration referencing
// anything else is rejected at load.
type Type string

const (
	TypeQueue       Type = "queue"
	TypeAlbums      Type = "albums"
	TypeArtists     Type = "artists"
	TypeDirectories Type = "directories"
	TypePlaylists   Type = "playlists"
	TypeSearch      Type = "search"
	TypeAlbumArt    Type = "albumart"
	TypeLogs        Type = "logs"
)

// Types lists every supported pane type.
func Types() []Type {
	return []Type{
		TypeQueue, TypeAlbums, TypeArtists, TypeDirectories,
		TypePlaylists, TypeSearch, TypeAlbumArt, TypeLogs,
	}
}

// Known reports whether name is a supported pane type.
func Known(name string) bool {
	for _, t := range Types() {
		if string(t) == name {
			return true
		}
	}
	return false
}

// Pane is a single UI component with its own internal state. One instance
// serves every placement of its type across all tabs, so state (cursor,
// scroll, cached rows) persists when the pane is hidden or re-placed.
//
// All methods run on the dispatch goroutine. View must not mutate state.
type Pane interface {
	Type() Type

	// Focusable panes can hold the focus cursor and receive key input.
	Focusable() bool

	// Init returns a command to load the pane's initial data.
	Init() tea.Cmd

	// Subscribes reports interest in a notification class. Interested panes
	// receive OnNotify even while hidden, so their state is current when
	// they next become visible.
	Subscribes(kind mpd.NotificationKind) bool

	// OnNotify reacts to a server state change, typically by returning a
	// command that refreshes cached rows.
	OnNotify(n mpd.Notification) tea.Cmd

	// Update receives key input while focused, and the pane's own async
	// messages (data loads) regardless of focus.
	Update(msg tea.Msg) tea.Cmd

	// View renders the pane into a width x height cell box.
	View(width, height int, focused bool) string
}

// Level grades a status-bar message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// StatusMsg asks the app to show a transient message in the status bar.
// Panes emit it for command failures and confirmations.
type StatusMsg struct {
	Text  string
	Level Level
}

// Status builds a command that surfaces a status-bar message.
func Status(level Level, text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, Level: level}
	}
}
