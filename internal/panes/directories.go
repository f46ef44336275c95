package panes

import (
	"fmt"
	"path"

	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/mpd"
)

// dirLoadedMsg carries one directory listing.
type dirLoadedMsg struct {
	uri     string
	entries []mpd.Entry
	err     error
}

// DirectoriesPane walks the music directory tree. Enter descends into a
// directory or enqueues a song; backspace goes up.
type DirectoriesPane struct {
	client  mpd.Client
	browser browser
	uri     string // current directory, "" is the root
	entries []mpd.Entry
}

var _ Pane = (*DirectoriesPane)(nil)

// NewDirectoriesPane creates the directory browser.
func NewDirectoriesPane(client mpd.Client) *DirectoriesPane {
	return &DirectoriesPane{client: client, browser: newBrowser("Directories")}
}

func (d *DirectoriesPane) Type() Type      { return TypeDirectories }
func (d *DirectoriesPane) Focusable() bool { return true }
func (d *DirectoriesPane) Typing() bool    { return d.browser.filtering }

func (d *DirectoriesPane) Init() tea.Cmd {
	return d.loadDir(d.uri)
}

func (d *DirectoriesPane) Subscribes(kind mpd.NotificationKind) bool {
	return kind == mpd.LibraryChanged
}

func (d *DirectoriesPane) OnNotify(n mpd.Notification) tea.Cmd {
	return d.loadDir(d.uri)
}

func (d *DirectoriesPane) loadDir(uri string) tea.Cmd {
	return func() tea.Msg {
		entries, err := d.client.ListDir(uri)
		return dirLoadedMsg{uri: uri, entries: entries, err: err}
	}
}

func (d *DirectoriesPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dirLoadedMsg:
		if msg.err != nil {
			return Status(LevelError, fmt.Sprintf("lsinfo %q: %v", msg.uri, msg.err))
		}
		d.uri = msg.uri
		d.entries = msg.entries
		items := make([]browseItem, len(msg.entries))
		for i, e := range msg.entries {
			label := path.Base(e.URI)
			if !e.Dir && !e.Playlist && e.Song.Title != "" {
				label = e.Song.Title
			}
			items[i] = browseItem{label: label, dir: e.Dir}
		}
		d.browser.setItems(items)
		return nil
	case tea.KeyMsg:
		if consumed, cmd := d.browser.update(msg); consumed {
			return cmd
		}
		switch msg.String() {
		case "enter":
			i, ok := d.browser.selected()
			if !ok {
				return nil
			}
			e := d.entries[i]
			if e.Dir {
				return d.loadDir(e.URI)
			}
			return d.enqueue(e.URI)
		case "backspace", "h", "left":
			if d.uri == "" {
				return nil
			}
			parent := path.Dir(d.uri)
			if parent == "." || parent == "/" {
				parent = ""
			}
			return d.loadDir(parent)
		}
	}
	return nil
}

func (d *DirectoriesPane) enqueue(uri string) tea.Cmd {
	return func() tea.Msg {
		if err := d.client.Add(uri); err != nil {
			return StatusMsg{Text: fmt.Sprintf("add %q: %v", uri, err), Level: LevelError}
		}
		return StatusMsg{Text: fmt.Sprintf("Added %q", uri), Level: LevelInfo}
	}
}

func (d *DirectoriesPane) View(width, height int, focused bool) string {
	return d.browser.view(width, height, focused)
}
