package ui

import (
	"github.com/charmbracelet/lipgloss"

	"cadenza/internal/layout"
)

// PaneRenderer produces one pane's content for its solved content box. The
// compositor never mutates pane state itself; rendering must be a pure
// projection of the pane.
type PaneRenderer func(p layout.Path, width, height int, focused bool) string

// Compose renders a solved tab into one block exactly covering the area.
// Each leaf is clamped to its allocation, framed per its border edges, and
// blocks are joined along the split tree. Solved rects tile the area exactly,
// so the joins reproduce it cell for cell. The focused leaf's frame uses the
// focused border style.
func Compose(root layout.Node, boxes map[layout.Path]layout.LeafBox, focused layout.Path, hasFocus bool, render PaneRenderer) string {
	return compose(root, "", boxes, focused, hasFocus, render)
}

func compose(n layout.Node, p layout.Path, boxes map[layout.Path]layout.LeafBox, focused layout.Path, hasFocus bool, render PaneRenderer) string {
	if n.IsLeaf() {
		box, ok := boxes[p]
		if !ok {
			return ""
		}
		isFocused := hasFocus && p == focused
		content := box.Content()
		block := clamp(render(p, content.Width, content.Height, isFocused), content.Width, content.Height)
		return frame(block, box.Edges, isFocused)
	}

	blocks := make([]string, len(n.Children))
	for i, c := range n.Children {
		blocks[i] = compose(c.Node, p.Child(i), boxes, focused, hasFocus, render)
	}
	if n.Direction == layout.Horizontal {
		return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// clamp pads and truncates a block to exactly width x height cells,
// ANSI-aware.
func clamp(s string, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).MaxWidth(width).
		Height(height).MaxHeight(height).
		Render(s)
}

// frame draws border glyphs on the edges the solver assigned to this leaf.
// The border cells live inside the leaf's allocation, so framing grows the
// block back to its allocated rect.
func frame(block string, e layout.Edges, focused bool) string {
	if !e.Any() {
		return block
	}
	style := Styles.BorderIdle
	if focused {
		style = Styles.BorderFocused
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), e.Top, e.Right, e.Bottom, e.Left).
		BorderForeground(style.GetForeground()).
		Render(block)
}
