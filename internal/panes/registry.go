package panes

import (
	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/mpd"
)

// Registry owns the single live instance of each pane type. Leaves reference
// panes by type; resolving the same type from any placement yields the same
// instance, so a mutation seen through one placement is instantly visible
// through every other. Instances are never torn down while the process runs.
type Registry struct {
	factory   func(Type) Pane
	instances map[Type]Pane
	order     []Type // instantiation order, for deterministic broadcast
}

// NewRegistry creates a registry backed by the given factory. The factory is
// called at most once per type.
func NewRegistry(factory func(Type) Pane) *Registry {
	return &Registry{factory: factory, instances: make(map[Type]Pane)}
}

// Get resolves a pane type to its shared instance, creating it on first
// request. Callers must only pass validated types; the closed set is checked
// at configuration load.
func (r *Registry) Get(t Type) Pane {
	if p, ok := r.instances[t]; ok {
		return p
	}
	p := r.factory(t)
	r.instances[t] = p
	r.order = append(r.order, t)
	return p
}

// Instantiated returns the live instances in creation order.
func (r *Registry) Instantiated() []Pane {
	out := make([]Pane, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.instances[t])
	}
	return out
}

// Broadcast forwards a notification to every instantiated pane subscribed to
// its class, hidden panes included, and batches their refresh commands.
func (r *Registry) Broadcast(n mpd.Notification) tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range r.order {
		p := r.instances[t]
		if p.Subscribes(n.Kind) {
			if cmd := p.OnNotify(n); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Forward delivers a message to every instantiated pane. Used for async data
// loads, which each pane recognizes by its own private message types.
func (r *Registry) Forward(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range r.order {
		if cmd := r.instances[t].Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
