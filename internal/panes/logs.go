package panes

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/mpd"
)

// LogLineMsg is one line emitted by the application logger, forwarded to the
// logs pane by the dispatcher.
type LogLineMsg struct {
	Line string
}

// logRingSize bounds the scrollback kept in memory.
const logRingSize = 500

// LogsPane shows recent application log lines in a scrollable viewport.
type LogsPane struct {
	viewport viewport.Model
	lines    []string
	follow   bool
}

var _ Pane = (*LogsPane)(nil)

// NewLogsPane creates the logs pane, following the tail by default.
func NewLogsPane() *LogsPane {
	return &LogsPane{viewport: viewport.New(0, 0), follow: true}
}

func (l *LogsPane) Type() Type      { return TypeLogs }
func (l *LogsPane) Focusable() bool { return true }

func (l *LogsPane) Init() tea.Cmd { return nil }

func (l *LogsPane) Subscribes(kind mpd.NotificationKind) bool { return false }

func (l *LogsPane) OnNotify(n mpd.Notification) tea.Cmd { return nil }

func (l *LogsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LogLineMsg:
		l.lines = append(l.lines, strings.TrimRight(msg.Line, "\n"))
		if len(l.lines) > logRingSize {
			l.lines = l.lines[len(l.lines)-logRingSize:]
		}
		l.viewport.SetContent(strings.Join(l.lines, "\n"))
		if l.follow {
			l.viewport.GotoBottom()
		}
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "G":
			l.follow = true
			l.viewport.GotoBottom()
			return nil
		case "g":
			l.follow = false
			l.viewport.GotoTop()
			return nil
		}
		l.follow = false
		var cmd tea.Cmd
		l.viewport, cmd = l.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (l *LogsPane) View(width, height int, focused bool) string {
	if width < 1 || height < 1 {
		return ""
	}
	// render through a sized copy so View never mutates pane state
	vp := l.viewport
	vp.Width = width
	vp.Height = height
	vp.SetContent(strings.Join(l.lines, "\n"))
	if l.follow {
		vp.GotoBottom()
	}
	return vp.View()
}
