// Package layout models a tab's pane arrangement as a recursive split tree
// and solves it into terminal cell rectangles.
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxDepth caps split nesting. Anything deeper is a configuration mistake,
// not a real layout.
const MaxDepth = 16

// Direction is the arrangement of a split's children.
type Direction int

const (
	// Horizontal places children side by side, left to right.
	Horizontal Direction = iota
	// Vertical stacks children top to bottom.
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Border is a tab-level policy controlling which pane edges get drawn borders.
type Border int

const (
	// BorderNone draws no borders; panes tile edge to edge.
	BorderNone Border = iota
	// BorderSingle draws a border only on edges between adjacent siblings.
	BorderSingle
	// BorderFull frames every leaf on all sides, outer edge included.
	BorderFull
)

func (b Border) String() string {
	switch b {
	case BorderSingle:
		return "single"
	case BorderFull:
		return "full"
	default:
		return "none"
	}
}

// Rect is a resolved terminal cell rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Inset shrinks the rect by n cells on each given side, clamping at zero size.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	r.X += left
	r.Y += top
	r.Width -= left + right
	r.Height -= top + bottom
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// Contains reports whether the cell at (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Path addresses a node within a tree as dot-joined child indexes.
// The root is the empty path; the second child of the first child is "0.1".
type Path string

// Child appends a child index to the path.
func (p Path) Child(i int) Path {
	if p == "" {
		return Path(strconv.Itoa(i))
	}
	return Path(string(p) + "." + strconv.Itoa(i))
}

// Indexes splits the path back into child indexes. The root path yields nil.
func (p Path) Indexes() []int {
	if p == "" {
		return nil
	}
	parts := strings.Split(string(p), ".")
	out := make([]int, len(parts))
	for i, s := range parts {
		n, _ := strconv.Atoi(s)
		out[i] = n
	}
	return out
}

// Node is one node of a layout tree: either a pane leaf or a weighted split.
// Exactly one of Pane or Children is set.
type Node struct {
	Pane      string // pane type identifier; empty for splits
	Direction Direction
	Children  []Child
}

// Child pairs a subtree with its share of the parent extent, out of 100.
type Child struct {
	Weight int
	Node   Node
}

// PaneNode builds a leaf referencing the given pane type.
func PaneNode(pane string) Node {
	return Node{Pane: pane}
}

// SplitNode builds a split arranging children along dir.
func SplitNode(dir Direction, children ...Child) Node {
	return Node{Direction: dir, Children: children}
}

// IsLeaf reports whether the node terminates in a pane reference.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// At resolves a path to the node it addresses. ok is false if the path walks
// off the tree.
func (n Node) At(p Path) (Node, bool) {
	cur := n
	for _, idx := range p.Indexes() {
		if idx < 0 || idx >= len(cur.Children) {
			return Node{}, false
		}
		cur = cur.Children[idx].Node
	}
	return cur, true
}

// Leaves returns the tree's leaf paths in depth-first order, left/top first.
func (n Node) Leaves() []Path {
	var out []Path
	n.walk("", &out)
	return out
}

func (n Node) walk(p Path, out *[]Path) {
	if n.IsLeaf() {
		*out = append(*out, p)
		return
	}
	for i, c := range n.Children {
		c.Node.walk(p.Child(i), out)
	}
}

// Validate checks the structural invariants of a layout tree: every split has
// at least one child, positive weights summing to exactly 100, and nesting
// no deeper than MaxDepth. knownPane reports whether a pane identifier is a
// supported type; pass nil to skip pane checks.
//
// Runs once at configuration load. The solver assumes a validated tree.
func Validate(n Node, knownPane func(string) bool) error {
	return validate(n, "", 0, knownPane)
}

func validate(n Node, p Path, depth int, knownPane func(string) bool) error {
	if depth > MaxDepth {
		return fmt.Errorf("layout nested deeper than %d levels at %q", MaxDepth, p)
	}
	if n.IsLeaf() {
		if n.Pane == "" {
			return fmt.Errorf("empty pane reference at %q", p)
		}
		if knownPane != nil && !knownPane(n.Pane) {
			return fmt.Errorf("unknown pane type %q at %q", n.Pane, p)
		}
		return nil
	}
	sum := 0
	for i, c := range n.Children {
		if c.Weight <= 0 {
			return fmt.Errorf("child %d of split %q has non-positive weight %d", i, p, c.Weight)
		}
		sum += c.Weight
	}
	if sum != 100 {
		return fmt.Errorf("weights of split %q sum to %d, want 100", p, sum)
	}
	for i, c := range n.Children {
		if err := validate(c.Node, p.Child(i), depth+1, knownPane); err != nil {
			return err
		}
	}
	return nil
}
