package ui

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps key strings (tea.KeyMsg.String() format: "q", "tab",
// "ctrl+c", "shift+up") to commands. Global bindings are consulted before the
// focused pane sees a key, so anything bound here is invisible to panes.
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
	}
}

// Bind registers a key to a command, overwriting any existing binding.
func (r *KeybindRegistry) Bind(key string, cmd tea.Cmd) {
	r.BindWithDesc(key, cmd, "")
}

// BindWithDesc registers a key with a description for the help line.
func (r *KeybindRegistry) BindWithDesc(key string, cmd tea.Cmd, desc string) {
	r.bindings[key] = cmd
	if desc != "" {
		r.descriptions[key] = desc
	}
}

// Lookup returns the command for a key, or nil if not bound.
func (r *KeybindRegistry) Lookup(key string) tea.Cmd {
	return r.bindings[key]
}

// Hints returns "key description" pairs sorted by key for display.
func (r *KeybindRegistry) Hints() []string {
	keys := make([]string, 0, len(r.descriptions))
	for k := range r.descriptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+" "+r.descriptions[k])
	}
	return out
}

// switchTabMsg selects a tab by index (relative when delta, absolute when
// not) or by name.
type switchTabMsg struct {
	name  string
	index int
	delta bool
}

// focusMoveMsg shifts pane focus.
type focusMoveMsg struct {
	dir  MoveDir
	step int // +1 next, -1 prev, 0 directional
}

// playbackOp is a fire-and-forget player command.
type playbackOp int

const (
	opTogglePause playbackOp = iota
	opStop
	opNext
	opPrev
	opVolumeUp
	opVolumeDown
	opSeekForward
	opSeekBack
)

// playbackMsg asks the dispatcher to issue a player command.
type playbackMsg struct {
	op playbackOp
}

func sendMsg(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// defaultKeybinds wires the global key set: quit, tab selection, focus
// moves, and playback controls.
func defaultKeybinds(tabs []string) *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "quit")
	reg.Bind("ctrl+c", tea.Quit)

	reg.BindWithDesc("tab", sendMsg(switchTabMsg{index: 1, delta: true}), "next tab")
	reg.BindWithDesc("shift+tab", sendMsg(switchTabMsg{index: -1, delta: true}), "prev tab")
	for i := range tabs {
		if i >= 9 {
			break
		}
		reg.Bind(string(rune('1'+i)), sendMsg(switchTabMsg{index: i}))
	}

	reg.BindWithDesc("ctrl+n", sendMsg(focusMoveMsg{step: 1}), "next pane")
	reg.BindWithDesc("ctrl+p", sendMsg(focusMoveMsg{step: -1}), "prev pane")
	reg.Bind("shift+left", sendMsg(focusMoveMsg{dir: MoveLeft}))
	reg.Bind("shift+right", sendMsg(focusMoveMsg{dir: MoveRight}))
	reg.Bind("shift+up", sendMsg(focusMoveMsg{dir: MoveUp}))
	reg.Bind("shift+down", sendMsg(focusMoveMsg{dir: MoveDown}))

	reg.BindWithDesc("p", sendMsg(playbackMsg{op: opTogglePause}), "pause")
	reg.BindWithDesc("s", sendMsg(playbackMsg{op: opStop}), "stop")
	reg.BindWithDesc(">", sendMsg(playbackMsg{op: opNext}), "next song")
	reg.BindWithDesc("<", sendMsg(playbackMsg{op: opPrev}), "prev song")
	reg.Bind("=", sendMsg(playbackMsg{op: opVolumeUp}))
	reg.Bind("-", sendMsg(playbackMsg{op: opVolumeDown}))
	reg.Bind("f", sendMsg(playbackMsg{op: opSeekForward}))
	reg.Bind("b", sendMsg(playbackMsg{op: opSeekBack}))
	return reg
}
