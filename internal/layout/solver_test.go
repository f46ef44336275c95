package layout

import "testing"

// exactTiling checks that the solved rects cover area with no gap or overlap
// by counting cell ownership.
func exactTiling(t *testing.T, boxes map[Path]LeafBox, area Rect) {
	t.Helper()
	owned := make(map[[2]int]Path)
	for p, b := range boxes {
		r := b.Rect
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				if prev, dup := owned[[2]int{x, y}]; dup {
					t.Fatalf("cell (%d,%d) owned by both %q and %q", x, y, prev, p)
				}
				owned[[2]int{x, y}] = p
			}
		}
	}
	if len(owned) != area.Width*area.Height {
		t.Fatalf("covered %d cells, want %d", len(owned), area.Width*area.Height)
	}
}

func TestSolve_TilesExactly(t *testing.T) {
	tree := SplitNode(Horizontal,
		Child{Weight: 33, Node: PaneNode("queue")},
		Child{Weight: 33, Node: SplitNode(Vertical,
			Child{Weight: 70, Node: PaneNode("albums")},
			Child{Weight: 30, Node: PaneNode("logs")},
		)},
		Child{Weight: 34, Node: PaneNode("artists")},
	)
	for _, policy := range []Border{BorderNone, BorderSingle, BorderFull} {
		for _, area := range []Rect{
			{Width: 80, Height: 24},
			{Width: 173, Height: 41},
			{X: 3, Y: 2, Width: 57, Height: 19},
		} {
			exactTiling(t, Solve(tree, area, policy), area)
		}
	}
}

func TestSolve_RemainderGoesToLastChild(t *testing.T) {
	tree := SplitNode(Horizontal,
		Child{Weight: 33, Node: PaneNode("a")},
		Child{Weight: 33, Node: PaneNode("b")},
		Child{Weight: 34, Node: PaneNode("c")},
	)
	boxes := Solve(tree, Rect{Width: 100, Height: 10}, BorderNone)
	if w := boxes["0"].Rect.Width; w != 33 {
		t.Errorf("first child width = %d, want 33", w)
	}
	if w := boxes["1"].Rect.Width; w != 33 {
		t.Errorf("second child width = %d, want 33", w)
	}
	// 100 - 33 - 33: the last child absorbs the rounding remainder.
	if w := boxes["2"].Rect.Width; w != 34 {
		t.Errorf("last child width = %d, want 34", w)
	}
}

func TestSolve_Idempotent(t *testing.T) {
	tree := SplitNode(Vertical,
		Child{Weight: 70, Node: PaneNode("queue")},
		Child{Weight: 30, Node: PaneNode("logs")},
	)
	area := Rect{Width: 91, Height: 33}
	first := Solve(tree, area, BorderSingle)
	second := Solve(tree, area, BorderSingle)
	if len(first) != len(second) {
		t.Fatalf("solve changed shape between runs")
	}
	for p, b := range first {
		if second[p] != b {
			t.Errorf("leaf %q: first %+v, second %+v", p, b, second[p])
		}
	}
}

// Full border on an 80x24 terminal with a 70/30 side-by-side split: the
// solver allocates 56 and 24 columns, and each leaf's drawable content
// shrinks by its own frame to 54x22 and 22x22.
func TestSolve_FullBorderSeventyThirty(t *testing.T) {
	tree := SplitNode(Horizontal,
		Child{Weight: 70, Node: PaneNode("queue")},
		Child{Weight: 30, Node: PaneNode("albumart")},
	)
	boxes := Solve(tree, Rect{Width: 80, Height: 24}, BorderFull)

	left, right := boxes["0"], boxes["1"]
	if left.Rect.Width != 56 || right.Rect.Width != 24 {
		t.Fatalf("allocations = %d/%d, want 56/24", left.Rect.Width, right.Rect.Width)
	}
	lc, rc := left.Content(), right.Content()
	if lc.Width != 54 || rc.Width != 22 {
		t.Errorf("content widths = %d/%d, want 54/22", lc.Width, rc.Width)
	}
	if lc.Height != 22 || rc.Height != 22 {
		t.Errorf("content heights = %d/%d, want 22/22", lc.Height, rc.Height)
	}
	if !left.Edges.Any() || !right.Edges.Any() {
		t.Error("full policy should frame every leaf")
	}
}

func TestSolve_SingleBorderOnlyBetweenSiblings(t *testing.T) {
	tree := SplitNode(Horizontal,
		Child{Weight: 50, Node: PaneNode("a")},
		Child{Weight: 50, Node: PaneNode("b")},
	)
	boxes := Solve(tree, Rect{Width: 80, Height: 24}, BorderSingle)

	left, right := boxes["0"], boxes["1"]
	if !left.Edges.Right {
		t.Error("leading sibling should own the separator on its right edge")
	}
	if left.Edges.Left || left.Edges.Top || left.Edges.Bottom {
		t.Errorf("single policy must not frame outer edges, got %+v", left.Edges)
	}
	if right.Edges.Any() {
		t.Errorf("trailing sibling draws no border of its own, got %+v", right.Edges)
	}
	if lc := left.Content(); lc.Width != left.Rect.Width-1 {
		t.Errorf("separator should consume one column of the leading sibling")
	}
}

func TestSolve_MinimumOneCellOnDegenerateSizes(t *testing.T) {
	tree := SplitNode(Horizontal,
		Child{Weight: 1, Node: PaneNode("a")},
		Child{Weight: 98, Node: PaneNode("b")},
		Child{Weight: 1, Node: PaneNode("c")},
	)
	boxes := Solve(tree, Rect{Width: 10, Height: 3}, BorderNone)
	sum := 0
	for p, b := range boxes {
		if b.Rect.Width < 1 {
			t.Errorf("leaf %q squeezed to %d cells", p, b.Rect.Width)
		}
		sum += b.Rect.Width
	}
	if sum != 10 {
		t.Errorf("widths sum to %d, want 10", sum)
	}
}

func TestSolve_NeverNegativeOnTinyTerminals(t *testing.T) {
	tree := SplitNode(Vertical,
		Child{Weight: 50, Node: PaneNode("a")},
		Child{Weight: 50, Node: PaneNode("b")},
	)
	for _, area := range []Rect{{Width: 0, Height: 0}, {Width: 1, Height: 1}, {Width: 2, Height: 1}} {
		for p, b := range Solve(tree, area, BorderFull) {
			if b.Rect.Width < 0 || b.Rect.Height < 0 {
				t.Errorf("area %+v leaf %q: negative rect %+v", area, p, b.Rect)
			}
			c := b.Content()
			if c.Width < 0 || c.Height < 0 {
				t.Errorf("area %+v leaf %q: negative content %+v", area, p, c)
			}
		}
	}
}
