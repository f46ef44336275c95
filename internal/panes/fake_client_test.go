package panes

import (
	"time"

	"cadenza/internal/mpd"
)

// fakeClient is a canned-data mpd.Client for pane tests.
type fakeClient struct {
	status    mpd.Status
	current   *mpd.Song
	queue     []mpd.Song
	tags      map[string][]string
	dirs      map[string][]mpd.Entry
	playlists []string
	art       []byte

	added   []string
	played  []int
	deleted []int
}

var _ mpd.Client = (*fakeClient)(nil)

func (f *fakeClient) Status() (mpd.Status, error)      { return f.status, nil }
func (f *fakeClient) CurrentSong() (*mpd.Song, error)  { return f.current, nil }
func (f *fakeClient) Queue() ([]mpd.Song, error)       { return f.queue, nil }
func (f *fakeClient) ListTag(tag string) ([]string, error) {
	return f.tags[tag], nil
}
func (f *fakeClient) FindByTag(tag, value string) ([]mpd.Song, error) {
	var out []mpd.Song
	for _, s := range f.queue {
		if (tag == "album" && s.Album == value) || (tag == "artist" && s.Artist == value) {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeClient) ListDir(uri string) ([]mpd.Entry, error) { return f.dirs[uri], nil }
func (f *fakeClient) ListPlaylists() ([]string, error)        { return f.playlists, nil }
func (f *fakeClient) PlaylistSongs(string) ([]mpd.Song, error) {
	return f.queue, nil
}
func (f *fakeClient) Search(string) ([]mpd.Song, error) { return f.queue, nil }
func (f *fakeClient) AlbumArt(string) ([]byte, error)   { return f.art, nil }

func (f *fakeClient) Play(pos int) error { f.played = append(f.played, pos); return nil }
func (f *fakeClient) TogglePause() error { return nil }
func (f *fakeClient) Stop() error        { return nil }
func (f *fakeClient) Next() error        { return nil }
func (f *fakeClient) Prev() error        { return nil }
func (f *fakeClient) SetVolume(int) error {
	return nil
}
func (f *fakeClient) SeekBy(time.Duration) error { return nil }
func (f *fakeClient) Add(uri string) error       { f.added = append(f.added, uri); return nil }
func (f *fakeClient) Delete(pos int) error       { f.deleted = append(f.deleted, pos); return nil }
func (f *fakeClient) Clear() error               { return nil }
func (f *fakeClient) Close() error               { return nil }
