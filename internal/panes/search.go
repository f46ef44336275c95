package panes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"cadenza/internal/mpd"
)

// searchDoneMsg carries server search results.
type searchDoneMsg struct {
	query string
	songs []mpd.Song
	err   error
}

// SearchPane queries the whole library. Typing edits the query, enter runs
// the search, enter on a result enqueues it.
type SearchPane struct {
	client  mpd.Client
	input   textinput.Model
	typing  bool
	results []mpd.Song
	cursor  int
	query   string
}

var _ Pane = (*SearchPane)(nil)

// NewSearchPane creates the search pane with the query input active.
func NewSearchPane(client mpd.Client) *SearchPane {
	ti := textinput.New()
	ti.Prompt = "search> "
	ti.CharLimit = 128
	return &SearchPane{client: client, input: ti, typing: true}
}

func (s *SearchPane) Type() Type      { return TypeSearch }
func (s *SearchPane) Focusable() bool { return true }

// Typing reports whether keystrokes are going into the query input, which
// suspends global keybinds.
func (s *SearchPane) Typing() bool { return s.typing }

func (s *SearchPane) Init() tea.Cmd {
	return s.input.Focus()
}

// Search results come from explicit queries, not server pushes.
func (s *SearchPane) Subscribes(kind mpd.NotificationKind) bool { return false }

func (s *SearchPane) OnNotify(n mpd.Notification) tea.Cmd { return nil }

func (s *SearchPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case searchDoneMsg:
		if msg.err != nil {
			return Status(LevelError, fmt.Sprintf("search %q: %v", msg.query, msg.err))
		}
		s.query = msg.query
		s.results = msg.songs
		s.cursor = 0
		return nil
	case tea.KeyMsg:
		if s.typing {
			switch msg.String() {
			case "enter":
				q := strings.TrimSpace(s.input.Value())
				if q == "" {
					return nil
				}
				s.typing = false
				s.input.Blur()
				return s.run(q)
			case "esc":
				s.typing = false
				s.input.Blur()
				return nil
			default:
				var cmd tea.Cmd
				s.input, cmd = s.input.Update(msg)
				return cmd
			}
		}
		switch msg.String() {
		case "/", "i":
			s.typing = true
			return s.input.Focus()
		case "j", "down":
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
		case "k", "up":
			if s.cursor > 0 {
				s.cursor--
			}
		case "enter":
			if s.cursor < len(s.results) {
				return s.enqueue(s.results[s.cursor])
			}
		}
	}
	return nil
}

func (s *SearchPane) run(query string) tea.Cmd {
	return func() tea.Msg {
		songs, err := s.client.Search(query)
		return searchDoneMsg{query: query, songs: songs, err: err}
	}
}

func (s *SearchPane) enqueue(song mpd.Song) tea.Cmd {
	return func() tea.Msg {
		if err := s.client.Add(song.File); err != nil {
			return StatusMsg{Text: fmt.Sprintf("add %q: %v", song.File, err), Level: LevelError}
		}
		return StatusMsg{Text: fmt.Sprintf("Added %q", song.DisplayName()), Level: LevelInfo}
	}
}

func (s *SearchPane) View(width, height int, focused bool) string {
	if width < 1 || height < 1 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(runewidth.Truncate(s.input.View(), width, "…"))
	sb.WriteByte('\n')

	if s.query != "" {
		header := fmt.Sprintf("%d results for %q", len(s.results), s.query)
		sb.WriteString(Styles.Muted.Render(runewidth.Truncate(header, width, "…")))
		sb.WriteByte('\n')
	}

	rows := height - 2
	offset := 0
	if rows > 0 && s.cursor >= rows {
		offset = s.cursor - rows + 1
	}
	for row := 0; row < rows && offset+row < len(s.results); row++ {
		song := s.results[offset+row]
		line := runewidth.Truncate(fmt.Sprintf("%s — %s", song.DisplayName(), song.Artist), width-2, "…")
		if offset+row == s.cursor && focused && !s.typing {
			sb.WriteString(Styles.Selected.Render("● " + line))
		} else {
			sb.WriteString("  " + Styles.Normal.Render(line))
		}
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
