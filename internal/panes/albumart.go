package panes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cadenza/internal/artwork"
	"cadenza/internal/mpd"
)

// artFetchedMsg carries raw album art bytes for the current song.
type artFetchedMsg struct {
	uri  string
	data []byte
	err  error
}

// AlbumArtPane displays cover art for the playing song. It is the one
// non-focusable pane type: navigation skips it and it never receives keys.
type AlbumArtPane struct {
	client   mpd.Client
	pipeline *artwork.Pipeline
	uri      string
	data     []byte
	fetchErr error
}

var _ Pane = (*AlbumArtPane)(nil)

// NewAlbumArtPane creates the art pane. The pipeline does the decode work
// off the dispatch goroutine; a nil pipeline disables art and the pane shows
// a placeholder instead.
func NewAlbumArtPane(client mpd.Client, pipeline *artwork.Pipeline) *AlbumArtPane {
	return &AlbumArtPane{client: client, pipeline: pipeline}
}

func (a *AlbumArtPane) Type() Type      { return TypeAlbumArt }
func (a *AlbumArtPane) Focusable() bool { return false }

func (a *AlbumArtPane) Init() tea.Cmd {
	if a.pipeline == nil {
		return nil
	}
	return a.fetch
}

func (a *AlbumArtPane) Subscribes(kind mpd.NotificationKind) bool {
	return kind == mpd.PlayerChanged
}

func (a *AlbumArtPane) OnNotify(n mpd.Notification) tea.Cmd {
	if a.pipeline == nil {
		return nil
	}
	return a.fetch
}

// fetch downloads art for the current song. Runs off the dispatch loop; the
// result lands back in Update.
func (a *AlbumArtPane) fetch() tea.Msg {
	song, err := a.client.CurrentSong()
	if err != nil {
		return artFetchedMsg{err: fmt.Errorf("current song: %w", err)}
	}
	if song == nil {
		return artFetchedMsg{}
	}
	data, err := a.client.AlbumArt(song.File)
	if err != nil {
		return artFetchedMsg{uri: song.File, err: fmt.Errorf("album art for %q: %w", song.File, err)}
	}
	return artFetchedMsg{uri: song.File, data: data}
}

func (a *AlbumArtPane) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(artFetchedMsg); ok {
		a.uri = msg.uri
		a.data = msg.data
		a.fetchErr = msg.err
	}
	return nil
}

func (a *AlbumArtPane) View(width, height int, focused bool) string {
	if width < 1 || height < 1 {
		return ""
	}
	switch {
	case a.pipeline == nil || a.fetchErr != nil:
		return centered(width, height, Styles.Empty.Render("no artwork"))
	case len(a.data) == 0:
		return centered(width, height, Styles.Empty.Render("nothing playing"))
	}
	blob, ok := a.pipeline.Request(a.data, width, height)
	if !ok {
		return centered(width, height, Styles.Muted.Render("decoding…"))
	}
	blob = strings.TrimRight(blob, "\n")
	if artwork.InTmux() {
		blob = artwork.Passthrough(blob)
	}
	return blob
}

// centered places a single line in the middle of a width x height box.
func centered(width, height int, line string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, line)
}
