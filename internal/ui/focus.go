package ui

import (
	"cadenza/internal/layout"
)

// MoveDir is a directional focus move.
type MoveDir int

const (
	MoveLeft MoveDir = iota
	MoveRight
	MoveUp
	MoveDown
)

// FocusManager tracks which leaf of the active tab holds focus. Focus is
// either on exactly one focusable leaf or nowhere at all; a tab whose every
// pane is non-focusable simply has no focus, and moves are no-ops there.
type FocusManager struct {
	order   []layout.Path
	rects   map[layout.Path]layout.Rect
	current layout.Path
	focused bool
}

// Rebuild recomputes the focusable leaf set from a solved tab. The previous
// focus survives when its leaf still exists; otherwise focus lands on the
// first focusable leaf in depth-first order.
func (f *FocusManager) Rebuild(root layout.Node, boxes map[layout.Path]layout.LeafBox, focusable func(layout.Path) bool) {
	f.order = f.order[:0]
	f.rects = make(map[layout.Path]layout.Rect, len(boxes))
	for _, p := range root.Leaves() {
		if !focusable(p) {
			continue
		}
		f.order = append(f.order, p)
		if box, ok := boxes[p]; ok {
			f.rects[p] = box.Rect
		}
	}
	if len(f.order) == 0 {
		f.focused = false
		f.current = ""
		return
	}
	if f.focused {
		for _, p := range f.order {
			if p == f.current {
				return
			}
		}
	}
	f.current = f.order[0]
	f.focused = true
}

// Reset drops the cursor so the next Rebuild lands on the first focusable
// leaf. Tab switches reset; resizes keep the cursor where it was.
func (f *FocusManager) Reset() {
	f.focused = false
	f.current = ""
}

// Current returns the focused leaf path, or false when nothing is focusable.
func (f *FocusManager) Current() (layout.Path, bool) {
	return f.current, f.focused
}

// Next advances focus in traversal order, wrapping at the end.
func (f *FocusManager) Next() {
	f.step(1)
}

// Prev moves focus backwards in traversal order, wrapping at the start.
func (f *FocusManager) Prev() {
	f.step(-1)
}

func (f *FocusManager) step(delta int) {
	if !f.focused || len(f.order) < 2 {
		return
	}
	idx := 0
	for i, p := range f.order {
		if p == f.current {
			idx = i
			break
		}
	}
	f.current = f.order[(idx+delta+len(f.order))%len(f.order)]
}

// Move shifts focus to the nearest focusable leaf in the given direction,
// wrapping to the far edge when none lies that way. A no-op when there is no
// other focusable leaf.
func (f *FocusManager) Move(dir MoveDir) {
	if !f.focused || len(f.order) < 2 {
		return
	}
	from, ok := f.rects[f.current]
	if !ok {
		return
	}

	if p, ok := f.nearest(from, dir, false); ok {
		f.current = p
		return
	}
	// wrap: approach from the opposite edge
	if p, ok := f.nearest(from, dir, true); ok {
		f.current = p
	}
}

// nearest finds the closest candidate whose rect overlaps from's
// perpendicular band. With wrap set, candidates on the opposite side are
// considered instead and the furthest one wins, so moving right off the
// right edge lands on the leftmost leaf of the same band.
func (f *FocusManager) nearest(from layout.Rect, dir MoveDir, wrap bool) (layout.Path, bool) {
	var best layout.Path
	found := false
	bestDist := 0
	for _, p := range f.order {
		if p == f.current {
			continue
		}
		r, ok := f.rects[p]
		if !ok || !f.overlaps(from, r, dir) {
			continue
		}
		dist, ahead := f.distance(from, r, dir)
		if ahead == wrap {
			continue
		}
		if !found || dist < bestDist {
			best, bestDist, found = p, dist, true
		}
	}
	return best, found
}

// overlaps reports whether r shares the axis perpendicular to the move with
// from, so moving left/right only considers rects in the same row band.
func (f *FocusManager) overlaps(from, r layout.Rect, dir MoveDir) bool {
	switch dir {
	case MoveLeft, MoveRight:
		return r.Y < from.Y+from.Height && from.Y < r.Y+r.Height
	default:
		return r.X < from.X+from.Width && from.X < r.X+r.Width
	}
}

// distance returns the gap between rect edges along the move axis and
// whether r lies ahead of from in the move direction.
func (f *FocusManager) distance(from, r layout.Rect, dir MoveDir) (dist int, ahead bool) {
	switch dir {
	case MoveRight:
		return r.X - from.X, r.X > from.X
	case MoveLeft:
		return from.X - r.X, r.X < from.X
	case MoveDown:
		return r.Y - from.Y, r.Y > from.Y
	default:
		return from.Y - r.Y, r.Y < from.Y
	}
}
