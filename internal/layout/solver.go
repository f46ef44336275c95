package layout

// Edges marks which sides of a leaf's rectangle carry a border glyph under
// the active border policy. Border cells are drawn inside the leaf's
// allocated rect, so solved rects always tile the area exactly.
type Edges struct {
	Top, Right, Bottom, Left bool
}

// Any reports whether at least one edge carries a border.
func (e Edges) Any() bool {
	return e.Top || e.Right || e.Bottom || e.Left
}

// LeafBox is the solved placement of one leaf: its allocated cells and the
// edges the renderer should frame.
type LeafBox struct {
	Rect  Rect
	Edges Edges
}

// Content returns the drawable area inside the leaf's border edges.
func (b LeafBox) Content() Rect {
	ins := func(on bool) int {
		if on {
			return 1
		}
		return 0
	}
	return b.Rect.Inset(ins(b.Edges.Top), ins(b.Edges.Right), ins(b.Edges.Bottom), ins(b.Edges.Left))
}

// Solve partitions area among the tree's leaves. Splits divide their extent
// proportionally to child weights out of 100 using integer cell arithmetic;
// the rounding remainder always goes to the last child, so child extents sum
// exactly to the parent extent. Children squeezed below one cell are raised
// to one cell with the deficit taken from the largest sibling, so the result
// is total and non-negative even on degenerate terminal sizes.
//
// Pure function of its inputs; callers cache the result until the tree or
// the area changes.
func Solve(root Node, area Rect, policy Border) map[Path]LeafBox {
	out := make(map[Path]LeafBox)
	edges := Edges{}
	if policy == BorderFull {
		edges = Edges{Top: true, Right: true, Bottom: true, Left: true}
	}
	solve(root, "", area, policy, edges, out)
	return out
}

func solve(n Node, p Path, area Rect, policy Border, edges Edges, out map[Path]LeafBox) {
	if area.Width < 0 {
		area.Width = 0
	}
	if area.Height < 0 {
		area.Height = 0
	}
	if n.IsLeaf() {
		out[p] = LeafBox{Rect: area, Edges: edges}
		return
	}

	weights := make([]int, len(n.Children))
	for i, c := range n.Children {
		weights[i] = c.Weight
	}
	total := area.Width
	if n.Direction == Vertical {
		total = area.Height
	}
	extents := divide(total, weights)

	offset := 0
	last := len(n.Children) - 1
	for i, c := range n.Children {
		var childArea Rect
		if n.Direction == Horizontal {
			childArea = Rect{X: area.X + offset, Y: area.Y, Width: extents[i], Height: area.Height}
		} else {
			childArea = Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: extents[i]}
		}
		offset += extents[i]
		solve(c.Node, p.Child(i), childArea, policy, childEdges(policy, edges, n.Direction, i, last), out)
	}
}

// childEdges derives a child's border edges from its parent's. Under the
// single policy a separator belongs to the leading sibling's trailing edge;
// the trailing sibling's facing edge stays clear so only one line is drawn.
func childEdges(policy Border, parent Edges, dir Direction, i, last int) Edges {
	if policy == BorderFull {
		return parent
	}
	if policy != BorderSingle {
		return Edges{}
	}
	e := parent
	if dir == Horizontal {
		if i > 0 {
			e.Left = false
		}
		if i < last {
			e.Right = true
		}
	} else {
		if i > 0 {
			e.Top = false
		}
		if i < last {
			e.Bottom = true
		}
	}
	return e
}

// divide splits total cells among weights summing to 100. All children but
// the last get the floor of their share; the last absorbs the remainder.
func divide(total int, weights []int) []int {
	n := len(weights)
	out := make([]int, n)
	if n == 0 || total <= 0 {
		return out
	}
	acc := 0
	for i := 0; i < n-1; i++ {
		out[i] = total * weights[i] / 100
		acc += out[i]
	}
	out[n-1] = total - acc

	// Minimum viable size is one cell; take the deficit from the largest
	// sibling. Bottoms out when no sibling has cells to spare.
	for i := range out {
		for out[i] < 1 {
			j := largestIdx(out)
			if j == i || out[j] <= 1 {
				break
			}
			out[j]--
			out[i]++
		}
	}
	return out
}

func largestIdx(xs []int) int {
	j := 0
	for i, x := range xs {
		if x > xs[j] {
			j = i
		}
	}
	return j
}
