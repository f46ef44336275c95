package panes

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/mpd"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// drain runs a command tree and delivers every produced message back to the
// registry, the way the dispatcher does.
func drain(t *testing.T, r *Registry, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(t, r, c)
		}
		return
	}
	drain(t, r, r.Forward(msg))
}

func testQueue() []mpd.Song {
	return []mpd.Song{
		{File: "a.flac", Title: "Alpha", Artist: "Ann", Album: "One", ID: 10, Pos: 0},
		{File: "b.flac", Title: "Beta", Artist: "Bob", Album: "One", ID: 11, Pos: 1},
		{File: "c.flac", Title: "Gamma", Artist: "Cat", Album: "Two", ID: 12, Pos: 2},
	}
}

func TestRegistrySharedInstance(t *testing.T) {
	client := &fakeClient{queue: testQueue()}
	r := NewRegistry(NewFactory(client, nil))

	first := r.Get(TypeQueue)
	second := r.Get(TypeQueue)
	if first != second {
		t.Fatal("same type resolved to different instances")
	}

	// mutate through one handle, observe through the other
	drain(t, r, first.Init())
	qp, ok := second.(*QueuePane)
	if !ok {
		t.Fatalf("unexpected pane type %T", second)
	}
	if len(qp.Songs()) != 3 {
		t.Fatalf("mutation not visible through second handle: %d songs", len(qp.Songs()))
	}
}

func TestRegistryFactoryCalledOncePerType(t *testing.T) {
	calls := map[Type]int{}
	client := &fakeClient{}
	inner := NewFactory(client, nil)
	r := NewRegistry(func(tp Type) Pane {
		calls[tp]++
		return inner(tp)
	})

	for i := 0; i < 3; i++ {
		r.Get(TypeAlbums)
		r.Get(TypeQueue)
	}
	if calls[TypeAlbums] != 1 || calls[TypeQueue] != 1 {
		t.Fatalf("factory calls = %v, want one per type", calls)
	}
	if got := len(r.Instantiated()); got != 2 {
		t.Fatalf("Instantiated() = %d panes, want 2", got)
	}
}

func TestBroadcastReachesHiddenPanes(t *testing.T) {
	client := &fakeClient{queue: testQueue()}
	r := NewRegistry(NewFactory(client, nil))

	queue := r.Get(TypeQueue).(*QueuePane)
	drain(t, r, queue.Init())

	// the queue pane is not on screen; the server reports a change anyway
	client.queue = append(client.queue, mpd.Song{File: "d.flac", Title: "Delta", ID: 13, Pos: 3})
	drain(t, r, r.Broadcast(mpd.Notification{Kind: mpd.QueueChanged}))

	if len(queue.Songs()) != 4 {
		t.Fatalf("hidden pane kept stale rows: %d songs", len(queue.Songs()))
	}
}

func TestBroadcastSkipsUnsubscribed(t *testing.T) {
	client := &fakeClient{queue: testQueue()}
	r := NewRegistry(NewFactory(client, nil))
	r.Get(TypeSearch)

	if cmd := r.Broadcast(mpd.Notification{Kind: mpd.MixerChanged}); cmd != nil {
		t.Fatal("mixer notification produced work for a non-subscriber")
	}
}

func TestQueueEnterPlaysSelected(t *testing.T) {
	client := &fakeClient{queue: testQueue()}
	r := NewRegistry(NewFactory(client, nil))
	queue := r.Get(TypeQueue).(*QueuePane)
	drain(t, r, queue.Init())

	drain(t, r, queue.Update(keyMsg("j")))
	drain(t, r, queue.Update(keyMsg("enter")))

	if len(client.played) != 1 || client.played[0] != 1 {
		t.Fatalf("played = %v, want [1]", client.played)
	}
}

func TestQueueDeleteSelected(t *testing.T) {
	client := &fakeClient{queue: testQueue()}
	r := NewRegistry(NewFactory(client, nil))
	queue := r.Get(TypeQueue).(*QueuePane)
	drain(t, r, queue.Init())

	drain(t, r, queue.Update(keyMsg("d")))
	if len(client.deleted) != 1 || client.deleted[0] != 0 {
		t.Fatalf("deleted = %v, want [0]", client.deleted)
	}
}

func TestQueuePlayingMarker(t *testing.T) {
	client := &fakeClient{
		queue:  testQueue(),
		status: mpd.Status{State: mpd.StatePlaying, SongID: 11},
	}
	r := NewRegistry(NewFactory(client, nil))
	queue := r.Get(TypeQueue).(*QueuePane)
	drain(t, r, queue.Init())

	view := queue.View(80, 10, true)
	if !strings.Contains(view, "▶") {
		t.Fatal("playing marker missing from view")
	}
	if !strings.Contains(view, "Beta") {
		t.Fatal("queue rows missing from view")
	}
}

func TestTagsEnqueueAlbum(t *testing.T) {
	client := &fakeClient{
		queue: testQueue(),
		tags:  map[string][]string{"album": {"One", "Two"}},
	}
	r := NewRegistry(NewFactory(client, nil))
	albums := r.Get(TypeAlbums).(*TagPane)
	drain(t, r, albums.Init())

	drain(t, r, albums.Update(keyMsg("enter")))

	// album "One" holds two tracks in the canned library
	if len(client.added) != 2 {
		t.Fatalf("added = %v, want both tracks of the album", client.added)
	}
}

func TestBrowserFuzzyFilter(t *testing.T) {
	b := newBrowser("test")
	b.setItems([]browseItem{
		{label: "Abbey Road"},
		{label: "Rubber Soul"},
		{label: "Revolver"},
	})

	b.update(keyMsg("/"))
	for _, r := range "rvl" {
		b.update(keyMsg(string(r)))
	}
	vis := b.visible()
	if len(vis) != 1 || b.items[vis[0]].label != "Revolver" {
		t.Fatalf("filter matched %v, want only Revolver", vis)
	}

	// esc clears the filter and restores the full list
	b.update(keyMsg("esc"))
	if len(b.visible()) != 3 {
		t.Fatalf("esc did not clear filter: %d visible", len(b.visible()))
	}
}

func TestBrowserFilterRanksBestMatchFirst(t *testing.T) {
	b := newBrowser("test")
	b.setItems([]browseItem{
		{label: "Remedy"},
		{label: "Radiohead"},
		{label: "Red"},
	})

	b.update(keyMsg("/"))
	for _, r := range "red" {
		b.update(keyMsg(string(r)))
	}
	vis := b.visible()
	if len(vis) == 0 {
		t.Fatal("filter matched nothing")
	}
	if got := b.items[vis[0]].label; got != "Red" {
		t.Fatalf("top match = %q, want the closest label Red", got)
	}
}

func TestAlbumArtWithoutPipeline(t *testing.T) {
	pane := NewAlbumArtPane(&fakeClient{}, nil)

	if cmd := pane.Init(); cmd != nil {
		t.Fatal("art pane without a pipeline should not fetch")
	}
	if cmd := pane.OnNotify(mpd.Notification{Kind: mpd.PlayerChanged}); cmd != nil {
		t.Fatal("art pane without a pipeline should ignore player changes")
	}

	// even with bytes already cached, View must degrade to the placeholder
	pane.Update(artFetchedMsg{uri: "a.flac", data: []byte("not-an-image")})
	out := pane.View(10, 5, false)
	if !strings.Contains(out, "no artwork") {
		t.Fatalf("want placeholder, got %q", out)
	}
}

func TestBrowserCursorClampsOnShrink(t *testing.T) {
	b := newBrowser("test")
	b.setItems([]browseItem{{label: "a"}, {label: "b"}, {label: "c"}})
	b.update(keyMsg("G"))
	if b.cursor != 2 {
		t.Fatalf("cursor = %d after G, want 2", b.cursor)
	}
	b.setItems([]browseItem{{label: "a"}})
	if b.cursor != 0 {
		t.Fatalf("cursor = %d after shrink, want 0", b.cursor)
	}
}

func TestDirectoriesDescendAndBack(t *testing.T) {
	client := &fakeClient{dirs: map[string][]mpd.Entry{
		"": {
			{URI: "rock", Dir: true},
			{URI: "loose.flac", Song: mpd.Song{File: "loose.flac", Title: "Loose"}},
		},
		"rock": {
			{URI: "rock/track.flac", Song: mpd.Song{File: "rock/track.flac", Title: "Track"}},
		},
	}}
	r := NewRegistry(NewFactory(client, nil))
	dirs := r.Get(TypeDirectories).(*DirectoriesPane)
	drain(t, r, dirs.Init())

	drain(t, r, dirs.Update(keyMsg("enter")))
	view := dirs.View(40, 10, true)
	if !strings.Contains(view, "Track") {
		t.Fatalf("descend did not load subdirectory:\n%s", view)
	}

	drain(t, r, dirs.Update(keyMsg("backspace")))
	view = dirs.View(40, 10, true)
	if !strings.Contains(view, "rock/") {
		t.Fatalf("back did not return to the root listing:\n%s", view)
	}
}

func TestSearchRunAndEnqueue(t *testing.T) {
	client := &fakeClient{queue: testQueue()}
	r := NewRegistry(NewFactory(client, nil))
	search := r.Get(TypeSearch).(*SearchPane)
	drain(t, r, search.Init())

	for _, ch := range "beta" {
		drain(t, r, search.Update(keyMsg(string(ch))))
	}
	drain(t, r, search.Update(keyMsg("enter"))) // run the search
	if len(search.results) != 3 {
		t.Fatalf("results = %d, want canned 3", len(search.results))
	}
	drain(t, r, search.Update(keyMsg("enter"))) // enqueue the selection
	if len(client.added) != 1 || client.added[0] != "a.flac" {
		t.Fatalf("added = %v, want [a.flac]", client.added)
	}
}

func TestLogsRingBounded(t *testing.T) {
	logs := NewLogsPane()
	for i := 0; i < logRingSize+50; i++ {
		logs.Update(LogLineMsg{Line: "line"})
	}
	if len(logs.lines) != logRingSize {
		t.Fatalf("ring holds %d lines, want %d", len(logs.lines), logRingSize)
	}
}

func TestViewDoesNotMutateState(t *testing.T) {
	client := &fakeClient{queue: testQueue()}
	r := NewRegistry(NewFactory(client, nil))
	queue := r.Get(TypeQueue).(*QueuePane)
	drain(t, r, queue.Init())

	before := queue.table.Cursor()
	queue.View(80, 10, false)
	queue.View(20, 3, true)
	if queue.table.Cursor() != before {
		t.Fatal("View moved the table cursor")
	}
}
