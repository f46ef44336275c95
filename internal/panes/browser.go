package panes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"
)

// browseItem is one row of a browser list.
type browseItem struct {
	label string
	dir   bool
}

// browser is the shared list core of the library panes: a cursor, a scroll
// window, and a fuzzy filter. Owners feed it items and interpret enter.
type browser struct {
	title     string
	items     []browseItem
	cursor    int // index into visible items
	offset    int // scroll offset into visible items
	filter    textinput.Model
	filtering bool
	matches   []int // item indexes matching the filter, nil when unfiltered
}

func newBrowser(title string) browser {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 64
	return browser{title: title, filter: ti}
}

// setItems replaces the rows, clamping cursor and re-applying the filter.
func (b *browser) setItems(items []browseItem) {
	b.items = items
	b.applyFilter()
	b.clampCursor()
}

// visible returns item indexes after filtering.
func (b *browser) visible() []int {
	if b.matches != nil {
		return b.matches
	}
	out := make([]int, len(b.items))
	for i := range b.items {
		out[i] = i
	}
	return out
}

// selected returns the item index under the cursor.
func (b *browser) selected() (int, bool) {
	vis := b.visible()
	if b.cursor < 0 || b.cursor >= len(vis) {
		return 0, false
	}
	return vis[b.cursor], true
}

func (b *browser) clampCursor() {
	n := len(b.visible())
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.offset > b.cursor {
		b.offset = b.cursor
	}
}

func (b *browser) applyFilter() {
	query := b.filter.Value()
	if query == "" {
		b.matches = nil
		return
	}
	labels := make([]string, len(b.items))
	for i, it := range b.items {
		labels[i] = it.label
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	sort.Sort(ranks)
	matches := make([]int, len(ranks))
	for i, r := range ranks {
		matches[i] = r.OriginalIndex
	}
	b.matches = matches
}

// update handles navigation and filter keys. Returns true when the key was
// consumed.
func (b *browser) update(msg tea.Msg) (consumed bool, cmd tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	if b.filtering {
		switch key.String() {
		case "esc":
			b.filtering = false
			b.filter.Blur()
			b.filter.SetValue("")
			b.applyFilter()
			b.clampCursor()
			return true, nil
		case "enter":
			b.filtering = false
			b.filter.Blur()
			return true, nil
		default:
			var c tea.Cmd
			b.filter, c = b.filter.Update(msg)
			b.applyFilter()
			b.cursor = 0
			b.offset = 0
			return true, c
		}
	}

	switch key.String() {
	case "j", "down":
		if b.cursor < len(b.visible())-1 {
			b.cursor++
		}
		return true, nil
	case "k", "up":
		if b.cursor > 0 {
			b.cursor--
		}
		return true, nil
	case "g":
		b.cursor = 0
		return true, nil
	case "G":
		b.cursor = len(b.visible()) - 1
		if b.cursor < 0 {
			b.cursor = 0
		}
		return true, nil
	case "/":
		b.filtering = true
		b.filter.SetValue("")
		return true, b.filter.Focus()
	case "esc":
		if b.matches != nil {
			b.filter.SetValue("")
			b.applyFilter()
			b.clampCursor()
			return true, nil
		}
	}
	return false, nil
}

// view renders the list into a width x height box.
func (b *browser) view(width, height int, focused bool) string {
	if width < 1 || height < 1 {
		return ""
	}
	var sb strings.Builder

	title := Styles.Title.Render(b.title) + Styles.Muted.Render(fmt.Sprintf(" (%d)", len(b.visible())))
	sb.WriteString(runewidth.Truncate(title, width, "…"))
	sb.WriteByte('\n')

	rows := height - 1
	if b.filtering || b.filter.Value() != "" {
		rows--
	}
	if rows < 0 {
		rows = 0
	}

	// derive the scroll window here so view stays a pure projection
	offset := b.offset
	if b.cursor < offset {
		offset = b.cursor
	}
	if rows > 0 && b.cursor >= offset+rows {
		offset = b.cursor - rows + 1
	}

	vis := b.visible()
	if len(vis) == 0 {
		sb.WriteString(Styles.Empty.Render("nothing here"))
	}
	for row := 0; row < rows && offset+row < len(vis); row++ {
		i := vis[offset+row]
		it := b.items[i]
		label := it.label
		if it.dir {
			label += "/"
		}
		line := runewidth.Truncate(label, width-2, "…")
		switch {
		case offset+row == b.cursor && focused:
			sb.WriteString(Styles.Selected.Render("● " + line))
		case offset+row == b.cursor:
			sb.WriteString(Styles.Normal.Render("● " + line))
		case it.dir:
			sb.WriteString("  " + Styles.Dir.Render(line))
		default:
			sb.WriteString("  " + Styles.Normal.Render(line))
		}
		if row < rows-1 || b.filtering || b.filter.Value() != "" {
			sb.WriteByte('\n')
		}
	}

	if b.filtering || b.filter.Value() != "" {
		sb.WriteString(b.filter.View())
	}
	return sb.String()
}
