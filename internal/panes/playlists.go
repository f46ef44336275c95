package panes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/mpd"
)

// playlistsLoadedMsg carries the stored playlist names.
type playlistsLoadedMsg struct {
	names []string
	err   error
}

// PlaylistsPane lists stored playlists. Enter enqueues the selected
// playlist's songs.
type PlaylistsPane struct {
	client  mpd.Client
	browser browser
}

var _ Pane = (*PlaylistsPane)(nil)

// NewPlaylistsPane creates the stored-playlists pane.
func NewPlaylistsPane(client mpd.Client) *PlaylistsPane {
	return &PlaylistsPane{client: client, browser: newBrowser("Playlists")}
}

func (p *PlaylistsPane) Type() Type      { return TypePlaylists }
func (p *PlaylistsPane) Focusable() bool { return true }
func (p *PlaylistsPane) Typing() bool    { return p.browser.filtering }

func (p *PlaylistsPane) Init() tea.Cmd {
	return p.load
}

func (p *PlaylistsPane) Subscribes(kind mpd.NotificationKind) bool {
	return kind == mpd.PlaylistsChanged
}

func (p *PlaylistsPane) OnNotify(n mpd.Notification) tea.Cmd {
	return p.load
}

func (p *PlaylistsPane) load() tea.Msg {
	names, err := p.client.ListPlaylists()
	return playlistsLoadedMsg{names: names, err: err}
}

func (p *PlaylistsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case playlistsLoadedMsg:
		if msg.err != nil {
			return Status(LevelError, fmt.Sprintf("playlists: %v", msg.err))
		}
		items := make([]browseItem, len(msg.names))
		for i, n := range msg.names {
			items[i] = browseItem{label: n}
		}
		p.browser.setItems(items)
		return nil
	case tea.KeyMsg:
		if consumed, cmd := p.browser.update(msg); consumed {
			return cmd
		}
		if msg.String() == "enter" {
			if i, ok := p.browser.selected(); ok {
				return p.enqueue(p.browser.items[i].label)
			}
		}
	}
	return nil
}

func (p *PlaylistsPane) enqueue(name string) tea.Cmd {
	return func() tea.Msg {
		songs, err := p.client.PlaylistSongs(name)
		if err != nil {
			return StatusMsg{Text: fmt.Sprintf("playlist %q: %v", name, err), Level: LevelError}
		}
		for _, s := range songs {
			if err := p.client.Add(s.File); err != nil {
				return StatusMsg{Text: fmt.Sprintf("add %q: %v", s.File, err), Level: LevelError}
			}
		}
		return StatusMsg{Text: fmt.Sprintf("Added playlist %q (%d songs)", name, len(songs)), Level: LevelInfo}
	}
}

func (p *PlaylistsPane) View(width, height int, focused bool) string {
	return p.browser.view(width, height, focused)
}
