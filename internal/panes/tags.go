package panes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/mpd"
)

// tagsLoadedMsg carries the values of one tag listing.
type tagsLoadedMsg struct {
	pane   Type
	values []string
	err    error
}

// TagPane browses the library grouped by one tag (albums, artists). Enter
// enqueues every song carrying the selected value.
type TagPane struct {
	typ     Type
	tag     string
	client  mpd.Client
	browser browser
}

var _ Pane = (*TagPane)(nil)

// NewAlbumsPane browses by album tag.
func NewAlbumsPane(client mpd.Client) *TagPane {
	return &TagPane{typ: TypeAlbums, tag: "album", client: client, browser: newBrowser("Albums")}
}

// NewArtistsPane browses by artist tag.
func NewArtistsPane(client mpd.Client) *TagPane {
	return &TagPane{typ: TypeArtists, tag: "artist", client: client, browser: newBrowser("Artists")}
}

func (t *TagPane) Type() Type      { return t.typ }
func (t *TagPane) Focusable() bool { return true }
func (t *TagPane) Typing() bool    { return t.browser.filtering }

func (t *TagPane) Init() tea.Cmd {
	return t.load
}

func (t *TagPane) Subscribes(kind mpd.NotificationKind) bool {
	return kind == mpd.LibraryChanged
}

func (t *TagPane) OnNotify(n mpd.Notification) tea.Cmd {
	return t.load
}

func (t *TagPane) load() tea.Msg {
	values, err := t.client.ListTag(t.tag)
	return tagsLoadedMsg{pane: t.typ, values: values, err: err}
}

func (t *TagPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tagsLoadedMsg:
		if msg.pane != t.typ {
			return nil
		}
		if msg.err != nil {
			return Status(LevelError, fmt.Sprintf("%s: %v", t.tag, msg.err))
		}
		items := make([]browseItem, len(msg.values))
		for i, v := range msg.values {
			items[i] = browseItem{label: v}
		}
		t.browser.setItems(items)
		return nil
	case tea.KeyMsg:
		if consumed, cmd := t.browser.update(msg); consumed {
			return cmd
		}
		if msg.String() == "enter" {
			if i, ok := t.browser.selected(); ok {
				return t.enqueue(t.browser.items[i].label)
			}
		}
	}
	return nil
}

// enqueue adds every song matching the tag value to the play queue.
func (t *TagPane) enqueue(value string) tea.Cmd {
	return func() tea.Msg {
		songs, err := t.client.FindByTag(t.tag, value)
		if err != nil {
			return StatusMsg{Text: fmt.Sprintf("find %s %q: %v", t.tag, value, err), Level: LevelError}
		}
		for _, s := range songs {
			if err := t.client.Add(s.File); err != nil {
				return StatusMsg{Text: fmt.Sprintf("add %q: %v", s.File, err), Level: LevelError}
			}
		}
		return StatusMsg{Text: fmt.Sprintf("Added %d songs from %q", len(songs), value), Level: LevelInfo}
	}
}

func (t *TagPane) View(width, height int, focused bool) string {
	return t.browser.view(width, height, focused)
}
