// Package mpd is the protocol collaborator: a thin line-protocol client for
// the Music Player Daemon plus an idle listener that turns server pushes
// into typed notifications for the UI dispatcher.
package mpd

import "time"

// PlayState is the daemon's playback state.
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Song is one track, from the queue or the library.
type Song struct {
	File     string
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
	ID       int // queue song id, -1 outside the queue
	Pos      int // queue position, -1 outside the queue
}

// DisplayName returns the title, falling back to the file path.
func (s Song) DisplayName() string {
	if s.Title != "" {
		return s.Title
	}
	return s.File
}

// Status is a snapshot of the daemon's playback status.
type Status struct {
	State    PlayState
	Volume   int
	Elapsed  time.Duration
	Duration time.Duration
	SongID   int
	Repeat   bool
	Random   bool
	Single   bool
	Consume  bool
}

// Entry is one item of a directory listing: a subdirectory, a playlist, or
// a song.
type Entry struct {
	URI      string
	Dir      bool
	Playlist bool
	Song     Song
}

// NotificationKind classifies a server-pushed state change.
type NotificationKind int

const (
	// QueueChanged: the play queue's contents changed.
	QueueChanged NotificationKind = iota
	// PlayerChanged: playback started, stopped, seeked, or moved to another song.
	PlayerChanged
	// MixerChanged: volume changed.
	MixerChanged
	// OptionsChanged: repeat, random, single, or consume toggled.
	OptionsChanged
	// LibraryChanged: the music database was updated.
	LibraryChanged
	// PlaylistsChanged: a stored playlist was created, renamed, or removed.
	PlaylistsChanged
	// ConnectionChanged: the idle connection went up or down.
	ConnectionChanged
)

func (k NotificationKind) String() string {
	switch k {
	case QueueChanged:
		return "queue"
	case PlayerChanged:
		return "player"
	case MixerChanged:
		return "mixer"
	case OptionsChanged:
		return "options"
	case LibraryChanged:
		return "library"
	case PlaylistsChanged:
		return "playlists"
	case ConnectionChanged:
		return "connection"
	default:
		return "unknown"
	}
}

// Notification is one typed state-change event from the listener.
type Notification struct {
	Kind NotificationKind
	// Connected is meaningful only for ConnectionChanged.
	Connected bool
}

// subsystemKind maps an idle subsystem name to a notification kind. The
// boolean is false for subsystems the UI does not consume.
func subsystemKind(name string) (NotificationKind, bool) {
	switch name {
	case "playlist":
		return QueueChanged, true
	case "player":
		return PlayerChanged, true
	case "mixer":
		return MixerChanged, true
	case "options":
		return OptionsChanged, true
	case "database", "update":
		return LibraryChanged, true
	case "stored_playlist":
		return PlaylistsChanged, true
	default:
		return 0, false
	}
}
