// Package ui is the composition engine: it solves the active tab's layout,
// routes input and server notifications to panes, and composites their views
// into the terminal frame.
package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"cadenza/internal/artwork"
	"cadenza/internal/config"
	"cadenza/internal/hooks"
	"cadenza/internal/layout"
	"cadenza/internal/mpd"
	"cadenza/internal/panes"
)

// notifyBatchLimit bounds how many queued notifications one Update drains,
// so a burst coalesces into a single render without starving input.
const notifyBatchLimit = 32

// statusTTL is how long a status-bar message stays up.
const statusTTL = 5 * time.Second

type notifyMsg struct {
	n mpd.Notification
}

type tickMsg time.Time

// headerMsg refreshes the frame chrome's playback snapshot.
type headerMsg struct {
	st   mpd.Status
	song *mpd.Song
	err  error
}

type statusExpiredMsg struct {
	gen int
}

type artResultMsg struct {
	res artwork.Result
}

// typist is implemented by panes whose focused state routes keystrokes into
// a text input; global keybinds are suspended while they type.
type typist interface {
	Typing() bool
}

// Options wires the app's collaborators.
type Options struct {
	Tabs           []config.Tab
	Registry       *panes.Registry
	Client         mpd.Client
	Notifications  <-chan mpd.Notification
	Artwork        *artwork.Pipeline
	Hook           *hooks.Runner
	UpdateInterval time.Duration
	Tracer         oteltrace.Tracer
}

// App is the root model and the sole owner of UI state. Every mutation
// happens on the Bubble Tea update goroutine; commands only fetch and
// report back as messages.
type App struct {
	tabs   []config.Tab
	active int

	reg    *panes.Registry
	client mpd.Client
	notes  <-chan mpd.Notification
	art    *artwork.Pipeline
	hook   *hooks.Runner
	keys   *KeybindRegistry
	focus  FocusManager
	tracer oteltrace.Tracer

	width  int
	height int
	solved map[layout.Path]layout.LeafBox

	inited map[panes.Type]bool

	st        mpd.Status
	song      *mpd.Song
	connected bool

	status      string
	statusLevel panes.Level
	statusGen   int

	interval time.Duration
}

var _ tea.Model = (*App)(nil)

// New creates the app model. Tabs must be validated configuration.
func New(opts Options) *App {
	names := make([]string, len(opts.Tabs))
	for i, t := range opts.Tabs {
		names[i] = t.Name
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("cadenza")
	}
	interval := opts.UpdateInterval
	if interval <= 0 {
		interval = time.Second
	}
	return &App{
		tabs:     opts.Tabs,
		reg:      opts.Registry,
		client:   opts.Client,
		notes:    opts.Notifications,
		art:      opts.Artwork,
		hook:     opts.Hook,
		keys:     defaultKeybinds(names),
		tracer:   tracer,
		inited:   make(map[panes.Type]bool),
		interval: interval,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadHeader, a.tick()}
	if a.notes != nil {
		cmds = append(cmds, a.listen)
	}
	if a.art != nil {
		cmds = append(cmds, a.listenArt)
	}
	if cmd := a.enterTab(a.active); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.resolve()
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case switchTabMsg:
		return a, a.handleSwitchTab(msg)

	case focusMoveMsg:
		if msg.step > 0 {
			a.focus.Next()
		} else if msg.step < 0 {
			a.focus.Prev()
		} else {
			a.focus.Move(msg.dir)
		}
		return a, nil

	case playbackMsg:
		return a, a.playback(msg.op)

	case notifyMsg:
		return a, a.handleNotifications(msg.n)

	case tickMsg:
		cmds := []tea.Cmd{a.tick()}
		if a.connected && a.st.State == mpd.StatePlaying {
			cmds = append(cmds, a.loadHeader)
		}
		return a, tea.Batch(cmds...)

	case headerMsg:
		if msg.err != nil {
			return a, nil
		}
		prev := a.song
		a.st = msg.st
		a.song = msg.song
		if a.song != nil && (prev == nil || prev.File != a.song.File) {
			return a, a.runHook(*a.song)
		}
		return a, nil

	case panes.StatusMsg:
		a.status = msg.Text
		a.statusLevel = msg.Level
		a.statusGen++
		gen := a.statusGen
		return a, tea.Tick(statusTTL, func(time.Time) tea.Msg {
			return statusExpiredMsg{gen: gen}
		})

	case statusExpiredMsg:
		if msg.gen == a.statusGen {
			a.status = ""
		}
		return a, nil

	case artResultMsg:
		if a.art != nil {
			a.art.Complete(msg.res)
			return a, a.listenArt
		}
		return a, nil
	}

	// async pane loads and log lines reach every instantiated pane
	return a, a.reg.Forward(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width < 1 || a.height < 3 {
		return ""
	}
	_, span := a.tracer.Start(context.Background(), "render",
		oteltrace.WithAttributes(attribute.String("tab", a.tab().Name)))
	defer span.End()

	names := make([]string, len(a.tabs))
	for i, t := range a.tabs {
		names[i] = t.Name
	}
	header := renderHeader(a.width, names, a.active, a.st, a.song, a.connected)

	focused, hasFocus := a.focus.Current()
	body := Compose(a.tab().Root, a.solved, focused, hasFocus, a.renderPane)

	bar := renderStatusBar(a.width, a.status, a.statusLevel, a.st)
	return header + "\n" + body + "\n" + bar
}

func (a *App) tab() config.Tab {
	return a.tabs[a.active]
}

func (a *App) renderPane(p layout.Path, width, height int, focused bool) string {
	t, ok := a.paneAt(p)
	if !ok {
		return ""
	}
	return a.reg.Get(t).View(width, height, focused)
}

func (a *App) paneAt(p layout.Path) (panes.Type, bool) {
	n, ok := a.tab().Root.At(p)
	if !ok || !n.IsLeaf() {
		return "", false
	}
	return panes.Type(n.Pane), true
}

// handleKey routes one keystroke: global bindings first, then the focused
// pane. Globals step aside while the focused pane is in text entry.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	focusedPane, hasFocus := a.focusedPane()

	typing := false
	if hasFocus {
		if t, ok := focusedPane.(typist); ok {
			typing = t.Typing()
		}
	}
	if !typing {
		if cmd := a.keys.Lookup(msg.String()); cmd != nil {
			return cmd
		}
	}
	if !hasFocus {
		return nil
	}
	return focusedPane.Update(msg)
}

func (a *App) focusedPane() (panes.Pane, bool) {
	p, ok := a.focus.Current()
	if !ok {
		return nil, false
	}
	t, ok := a.paneAt(p)
	if !ok {
		return nil, false
	}
	return a.reg.Get(t), true
}

func (a *App) handleSwitchTab(msg switchTabMsg) tea.Cmd {
	target := msg.index
	switch {
	case msg.name != "":
		target = -1
		for i, t := range a.tabs {
			if t.Name == msg.name {
				target = i
				break
			}
		}
		if target < 0 {
			return panes.Status(panes.LevelError, fmt.Sprintf("no tab named %q", msg.name))
		}
	case msg.delta:
		target = (a.active + msg.index + len(a.tabs)) % len(a.tabs)
	}
	if target < 0 || target >= len(a.tabs) || target == a.active {
		return nil
	}
	return a.enterTab(target)
}

// SwitchToTab selects a tab by name. Panes refreshed while hidden render
// their current state immediately; no refetch happens here.
func (a *App) SwitchToTab(name string) tea.Cmd {
	return a.handleSwitchTab(switchTabMsg{name: name})
}

// enterTab activates a tab: instantiates its panes, solves its layout, and
// recomputes focus from scratch, landing on the tab's first focusable leaf.
// Returns the Init commands of panes created just now.
func (a *App) enterTab(i int) tea.Cmd {
	a.active = i
	a.focus.Reset()
	var cmds []tea.Cmd
	for _, p := range a.tab().Root.Leaves() {
		t, ok := a.paneAt(p)
		if !ok {
			continue
		}
		pane := a.reg.Get(t)
		if !a.inited[t] {
			a.inited[t] = true
			if cmd := pane.Init(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	a.resolve()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// resolve recomputes the active tab's solved rects for the current terminal
// size. The body sits between the header row and the status bar.
func (a *App) resolve() {
	if a.width < 1 || a.height < 3 {
		a.solved = nil
		return
	}
	area := layout.Rect{X: 0, Y: 1, Width: a.width, Height: a.height - 2}
	tab := a.tab()
	a.solved = layout.Solve(tab.Root, area, tab.Border)
	a.focus.Rebuild(tab.Root, a.solved, func(p layout.Path) bool {
		t, ok := a.paneAt(p)
		if !ok {
			return false
		}
		return a.reg.Get(t).Focusable()
	})
}

// handleNotifications drains a burst of queued notifications in one pass and
// broadcasts them, so ten rapid changes become one render.
func (a *App) handleNotifications(first mpd.Notification) tea.Cmd {
	batch := []mpd.Notification{first}
drain:
	for len(batch) < notifyBatchLimit {
		select {
		case n, ok := <-a.notes:
			if !ok {
				break drain
			}
			batch = append(batch, n)
		default:
			break drain
		}
	}

	_, span := a.tracer.Start(context.Background(), "dispatch",
		oteltrace.WithAttributes(attribute.Int("batch_size", len(batch))))
	defer span.End()

	var cmds []tea.Cmd
	headerStale := false
	for _, n := range batch {
		if n.Kind == mpd.ConnectionChanged {
			a.connected = n.Connected
			headerStale = true
			continue
		}
		switch n.Kind {
		case mpd.PlayerChanged, mpd.MixerChanged, mpd.OptionsChanged:
			headerStale = true
		}
		if cmd := a.reg.Broadcast(n); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if headerStale {
		cmds = append(cmds, a.loadHeader)
	}
	if a.notes != nil {
		cmds = append(cmds, a.listen)
	}
	return tea.Batch(cmds...)
}

// listen pumps one notification from the listener channel.
func (a *App) listen() tea.Msg {
	n, ok := <-a.notes
	if !ok {
		return nil
	}
	return notifyMsg{n: n}
}

// listenArt pumps one completed artwork encode.
func (a *App) listenArt() tea.Msg {
	res, ok := <-a.art.Results()
	if !ok {
		return nil
	}
	return artResultMsg{res: res}
}

func (a *App) loadHeader() tea.Msg {
	st, err := a.client.Status()
	if err != nil {
		return headerMsg{err: err}
	}
	song, err := a.client.CurrentSong()
	if err != nil {
		return headerMsg{err: err}
	}
	return headerMsg{st: st, song: song}
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// playback issues a fire-and-forget player command; failures surface on the
// status bar.
func (a *App) playback(op playbackOp) tea.Cmd {
	vol := a.st.Volume
	return func() tea.Msg {
		var err error
		switch op {
		case opTogglePause:
			err = a.client.TogglePause()
		case opStop:
			err = a.client.Stop()
		case opNext:
			err = a.client.Next()
		case opPrev:
			err = a.client.Prev()
		case opVolumeUp:
			err = a.client.SetVolume(clampVolume(vol + 5))
		case opVolumeDown:
			err = a.client.SetVolume(clampVolume(vol - 5))
		case opSeekForward:
			err = a.client.SeekBy(5 * time.Second)
		case opSeekBack:
			err = a.client.SeekBy(-5 * time.Second)
		}
		if err != nil {
			return panes.StatusMsg{Text: fmt.Sprintf("player: %v", err), Level: panes.LevelError}
		}
		return nil
	}
}

// runHook fires the on_song_change hook off the dispatch goroutine.
func (a *App) runHook(song mpd.Song) tea.Cmd {
	if !a.hook.Enabled() {
		return nil
	}
	return func() tea.Msg {
		if err := a.hook.Run(context.Background(), song); err != nil {
			return panes.StatusMsg{Text: err.Error(), Level: panes.LevelWarn}
		}
		return nil
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
