package config

import (
	"fmt"
	"strings"

	"cadenza/internal/layout"
)

// decodeTabs turns the raw "tabs" config tree into Tab values. A node is
// either a pane leaf:
//
//	pane: queue
//
// or a split with weighted children:
//
//	direction: horizontal
//	children:
//	  - weight: 30
//	    pane: albumart
//	  - weight: 70
//	    pane: queue
//
// Errors name the tab and the node path so a broken config is findable.
func decodeTabs(raw any) ([]Tab, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("tabs: expected a list, got %T", raw)
	}
	tabs := make([]Tab, 0, len(list))
	for i, item := range list {
		m, ok := toMap(item)
		if !ok {
			return nil, fmt.Errorf("tabs[%d]: expected a mapping, got %T", i, item)
		}
		name, _ := m["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("tabs[%d]: missing name", i)
		}
		border, err := decodeBorder(m["border"])
		if err != nil {
			return nil, fmt.Errorf("tab %q: %w", name, err)
		}
		root, err := decodeNode(m, layout.Path(""))
		if err != nil {
			return nil, fmt.Errorf("tab %q: %w", name, err)
		}
		tabs = append(tabs, Tab{Name: name, Border: border, Root: root})
	}
	return tabs, nil
}

func decodeBorder(raw any) (layout.Border, error) {
	s, _ := raw.(string)
	switch strings.ToLower(s) {
	case "", "none":
		return layout.BorderNone, nil
	case "single":
		return layout.BorderSingle, nil
	case "full":
		return layout.BorderFull, nil
	default:
		return 0, fmt.Errorf("unknown border %q (want none, single, or full)", s)
	}
}

func decodeNode(m map[string]any, p layout.Path) (layout.Node, error) {
	pane, hasPane := m["pane"].(string)
	_, hasDir := m["direction"]
	switch {
	case hasPane && hasDir:
		return layout.Node{}, fmt.Errorf("node %q: both pane and direction set", pathLabel(p))
	case hasPane:
		return layout.PaneNode(pane), nil
	case hasDir:
		return decodeSplit(m, p)
	default:
		return layout.Node{}, fmt.Errorf("node %q: need either pane or direction", pathLabel(p))
	}
}

func decodeSplit(m map[string]any, p layout.Path) (layout.Node, error) {
	var dir layout.Direction
	switch s, _ := m["direction"].(string); strings.ToLower(s) {
	case "horizontal":
		dir = layout.Horizontal
	case "vertical":
		dir = layout.Vertical
	default:
		return layout.Node{}, fmt.Errorf("node %q: unknown direction %q (want horizontal or vertical)", pathLabel(p), m["direction"])
	}

	rawChildren, ok := m["children"].([]any)
	if !ok || len(rawChildren) == 0 {
		return layout.Node{}, fmt.Errorf("node %q: split has no children", pathLabel(p))
	}
	children := make([]layout.Child, 0, len(rawChildren))
	for i, rc := range rawChildren {
		cm, ok := toMap(rc)
		if !ok {
			return layout.Node{}, fmt.Errorf("node %q: child %d is not a mapping", pathLabel(p), i)
		}
		weight, ok := toInt(cm["weight"])
		if !ok {
			return layout.Node{}, fmt.Errorf("node %q: child %d has no weight", pathLabel(p), i)
		}
		child, err := decodeNode(cm, p.Child(i))
		if err != nil {
			return layout.Node{}, err
		}
		children = append(children, layout.Child{Weight: weight, Node: child})
	}
	return layout.SplitNode(dir, children...), nil
}

func pathLabel(p layout.Path) string {
	if p == "" {
		return "root"
	}
	return string(p)
}

// toMap accepts both YAML decoder map flavors.
func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
