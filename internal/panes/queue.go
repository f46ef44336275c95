package panes

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/mpd"
)

// queueLoadedMsg carries freshly fetched queue rows.
type queueLoadedMsg struct {
	songs []mpd.Song
	err   error
}

// queueStatusMsg carries the playing song id for the row marker.
type queueStatusMsg struct {
	songID int
}

// QueuePane shows the play queue as a table. Its cached rows are refreshed
// on every queue-change notification, visible or not, so switching to the
// tab always shows current data.
type QueuePane struct {
	client    mpd.Client
	table     table.Model
	songs     []mpd.Song
	playingID int
	loadErr   error
}

var _ Pane = (*QueuePane)(nil)

// NewQueuePane creates the queue pane.
func NewQueuePane(client mpd.Client) *QueuePane {
	t := table.New(
		table.WithColumns(queueColumns(60)),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(Styles.Title.GetForeground())
	s.Selected = Styles.Selected
	t.SetStyles(s)
	return &QueuePane{client: client, table: t, playingID: -1}
}

func (q *QueuePane) Type() Type      { return TypeQueue }
func (q *QueuePane) Focusable() bool { return true }

func (q *QueuePane) Init() tea.Cmd {
	return tea.Batch(q.load, q.loadStatus)
}

func (q *QueuePane) Subscribes(kind mpd.NotificationKind) bool {
	return kind == mpd.QueueChanged || kind == mpd.PlayerChanged
}

func (q *QueuePane) OnNotify(n mpd.Notification) tea.Cmd {
	switch n.Kind {
	case mpd.QueueChanged:
		return q.load
	case mpd.PlayerChanged:
		return q.loadStatus
	}
	return nil
}

func (q *QueuePane) load() tea.Msg {
	songs, err := q.client.Queue()
	return queueLoadedMsg{songs: songs, err: err}
}

func (q *QueuePane) loadStatus() tea.Msg {
	st, err := q.client.Status()
	if err != nil {
		return queueStatusMsg{songID: -1}
	}
	return queueStatusMsg{songID: st.SongID}
}

func (q *QueuePane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case queueLoadedMsg:
		if msg.err != nil {
			q.loadErr = msg.err
			return Status(LevelError, fmt.Sprintf("queue: %v", msg.err))
		}
		q.loadErr = nil
		q.setSongs(msg.songs)
		return nil
	case queueStatusMsg:
		q.playingID = msg.songID
		q.refreshRows()
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if song, ok := q.selectedSong(); ok {
				return q.playCmd(song.Pos)
			}
		case "d", "delete":
			if song, ok := q.selectedSong(); ok {
				return q.deleteCmd(song.Pos)
			}
		default:
			var cmd tea.Cmd
			q.table, cmd = q.table.Update(msg)
			return cmd
		}
	}
	return nil
}

func (q *QueuePane) playCmd(pos int) tea.Cmd {
	return func() tea.Msg {
		if err := q.client.Play(pos); err != nil {
			return StatusMsg{Text: fmt.Sprintf("play: %v", err), Level: LevelError}
		}
		return nil
	}
}

func (q *QueuePane) deleteCmd(pos int) tea.Cmd {
	return func() tea.Msg {
		if err := q.client.Delete(pos); err != nil {
			return StatusMsg{Text: fmt.Sprintf("delete: %v", err), Level: LevelError}
		}
		return nil
	}
}

// Songs exposes the cached rows. Used by tests and the album art pane's
// current-song lookup.
func (q *QueuePane) Songs() []mpd.Song {
	return q.songs
}

func (q *QueuePane) selectedSong() (mpd.Song, bool) {
	i := q.table.Cursor()
	if i < 0 || i >= len(q.songs) {
		return mpd.Song{}, false
	}
	return q.songs[i], true
}

func (q *QueuePane) setSongs(songs []mpd.Song) {
	q.songs = songs
	q.refreshRows()
	if cur := q.table.Cursor(); cur >= len(songs) && len(songs) > 0 {
		q.table.SetCursor(len(songs) - 1)
	}
}

func (q *QueuePane) refreshRows() {
	rows := make([]table.Row, len(q.songs))
	for i, s := range q.songs {
		marker := " "
		if s.ID == q.playingID && s.ID >= 0 {
			marker = "▶"
		}
		rows[i] = table.Row{marker, s.DisplayName(), s.Artist, s.Album, formatDuration(s.Duration)}
	}
	q.table.SetRows(rows)
}

func (q *QueuePane) View(width, height int, focused bool) string {
	if width < 1 || height < 1 {
		return ""
	}
	// render through a sized copy so View never mutates pane state
	t := q.table
	t.SetColumns(queueColumns(width))
	t.SetWidth(width)
	t.SetHeight(height)
	if !focused {
		t.Blur()
	}
	return t.View()
}

func queueColumns(width int) []table.Column {
	title := width - 2 - 5 - 1
	if title < 10 {
		return []table.Column{
			{Title: "", Width: 1},
			{Title: "Title", Width: max(width-2, 1)},
		}
	}
	artist := title * 30 / 100
	album := title * 25 / 100
	title -= artist + album
	return []table.Column{
		{Title: "", Width: 1},
		{Title: "Title", Width: title},
		{Title: "Artist", Width: artist},
		{Title: "Album", Width: album},
		{Title: "Time", Width: 5},
	}
}

func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
