package panes

import (
	"cadenza/internal/artwork"
	"cadenza/internal/mpd"
)

// NewFactory builds the registry factory wiring each pane type to its
// collaborators. The type set is validated at configuration load, so the
// factory covers every Type.
func NewFactory(client mpd.Client, pipeline *artwork.Pipeline) func(Type) Pane {
	return func(t Type) Pane {
		switch t {
		case TypeQueue:
			return NewQueuePane(client)
		case TypeAlbums:
			return NewAlbumsPane(client)
		case TypeArtists:
			return NewArtistsPane(client)
		case TypeDirectories:
			return NewDirectoriesPane(client)
		case TypePlaylists:
			return NewPlaylistsPane(client)
		case TypeSearch:
			return NewSearchPane(client)
		case TypeAlbumArt:
			return NewAlbumArtPane(client, pipeline)
		case TypeLogs:
			return NewLogsPane()
		default:
			// unreachable after config validation
			panic("unknown pane type " + string(t))
		}
	}
}
