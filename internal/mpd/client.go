package mpd

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Client is the command surface panes act through. Implementations must be
// safe to call from the UI dispatch loop; blocking network reads happen on
// the calling goroutine, so commands keep a short deadline.
type Client interface {
	Status() (Status, error)
	CurrentSong() (*Song, error)
	Queue() ([]Song, error)
	ListTag(tag string) ([]string, error)
	FindByTag(tag, value string) ([]Song, error)
	ListDir(uri string) ([]Entry, error)
	ListPlaylists() ([]string, error)
	PlaylistSongs(name string) ([]Song, error)
	Search(query string) ([]Song, error)
	AlbumArt(uri string) ([]byte, error)

	Play(pos int) error
	TogglePause() error
	Stop() error
	Next() error
	Prev() error
	SetVolume(vol int) error
	SeekBy(offset time.Duration) error
	Add(uri string) error
	Delete(pos int) error
	Clear() error

	Close() error
}

const commandTimeout = 5 * time.Second

// Conn is the TCP implementation of Client. One Conn serves the dispatch
// loop; the idle listener holds its own connection so commands never wait
// behind a blocking idle.
type Conn struct {
	conn net.Conn
	rd   *bufio.Reader
}

var _ Client = (*Conn)(nil)

// Dial connects and authenticates. The daemon greets with its protocol
// version; anything else is a handshake failure.
func Dial(addr, password string) (*Conn, error) {
	nc, err := net.DialTimeout("tcp", addr, commandTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial mpd at %s: %w", addr, err)
	}
	c := &Conn{conn: nc, rd: bufio.NewReader(nc)}
	greeting, err := c.readLine()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("read mpd greeting: %w", err)
	}
	if !strings.HasPrefix(greeting, "OK MPD") {
		nc.Close()
		return nil, fmt.Errorf("unexpected mpd greeting %q", greeting)
	}
	if password != "" {
		if _, err := c.command("password %s", quote(password)); err != nil {
			nc.Close()
			return nil, fmt.Errorf("authenticate: %w", err)
		}
	}
	return c, nil
}

func (c *Conn) Close() error {
	fmt.Fprintf(c.conn, "close\n")
	return c.conn.Close()
}

// command sends one command and collects response lines up to OK, or fails
// on an ACK line.
func (c *Conn) command(format string, args ...any) ([]string, error) {
	cmd := fmt.Sprintf(format, args...)
	c.conn.SetDeadline(time.Now().Add(commandTimeout))
	if _, err := fmt.Fprintf(c.conn, "%s\n", cmd); err != nil {
		return nil, fmt.Errorf("send %q: %w", cmd, err)
	}
	var lines []string
	for {
		line, err := c.readLine()
		if err != nil {
			return nil, fmt.Errorf("read response to %q: %w", cmd, err)
		}
		if line == "OK" {
			return lines, nil
		}
		if strings.HasPrefix(line, "ACK ") {
			return nil, parseAck(line)
		}
		lines = append(lines, line)
	}
}

func (c *Conn) readLine() (string, error) {
	line, err := c.rd.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Error is a protocol-level ACK from the daemon.
type Error struct {
	Code    int
	Command string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("mpd: %s (error %d from %q)", e.Message, e.Code, e.Command)
}

// parseAck decodes "ACK [code@list] {command} message".
func parseAck(line string) error {
	e := &Error{Message: line}
	rest := strings.TrimPrefix(line, "ACK ")
	if i := strings.IndexByte(rest, ']'); i > 0 && strings.HasPrefix(rest, "[") {
		codes := rest[1:i]
		if at := strings.IndexByte(codes, '@'); at > 0 {
			e.Code, _ = strconv.Atoi(codes[:at])
		}
		rest = strings.TrimSpace(rest[i+1:])
	}
	if i := strings.IndexByte(rest, '}'); i > 0 && strings.HasPrefix(rest, "{") {
		e.Command = rest[1:i]
		rest = strings.TrimSpace(rest[i+1:])
	}
	if rest != "" {
		e.Message = rest
	}
	return e
}

// quote wraps an argument in double quotes, escaping embedded quotes and
// backslashes per the protocol.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func (c *Conn) Status() (Status, error) {
	lines, err := c.command("status")
	if err != nil {
		return Status{}, err
	}
	return parseStatus(lines), nil
}

func (c *Conn) CurrentSong() (*Song, error) {
	lines, err := c.command("currentsong")
	if err != nil {
		return nil, err
	}
	songs := parseSongs(lines)
	if len(songs) == 0 {
		return nil, nil
	}
	return &songs[0], nil
}

func (c *Conn) Queue() ([]Song, error) {
	lines, err := c.command("playlistinfo")
	if err != nil {
		return nil, err
	}
	return parseSongs(lines), nil
}

func (c *Conn) ListTag(tag string) ([]string, error) {
	lines, err := c.command("list %s", tag)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(tag)
	var out []string
	for _, line := range lines {
		k, v, ok := splitPair(line)
		if ok && strings.ToLower(k) == want && v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c *Conn) FindByTag(tag, value string) ([]Song, error) {
	lines, err := c.command("find %s %s", quote(tag), quote(value))
	if err != nil {
		return nil, err
	}
	return parseSongs(lines), nil
}

func (c *Conn) ListDir(uri string) ([]Entry, error) {
	var lines []string
	var err error
	if uri == "" {
		lines, err = c.command("lsinfo")
	} else {
		lines, err = c.command("lsinfo %s", quote(uri))
	}
	if err != nil {
		return nil, err
	}
	return parseEntries(lines), nil
}

func (c *Conn) ListPlaylists() ([]string, error) {
	lines, err := c.command("listplaylists")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range lines {
		if k, v, ok := splitPair(line); ok && k == "playlist" {
			out = append(out, v)
		}
	}
	return out, nil
}

func (c *Conn) PlaylistSongs(name string) ([]Song, error) {
	lines, err := c.command("listplaylistinfo %s", quote(name))
	if err != nil {
		return nil, err
	}
	return parseSongs(lines), nil
}

func (c *Conn) Search(query string) ([]Song, error) {
	lines, err := c.command("search any %s", quote(query))
	if err != nil {
		return nil, err
	}
	return parseSongs(lines), nil
}

// AlbumArt fetches embedded or sidecar art for a song URI, reading the
// binary response in chunks until the full size has arrived.
func (c *Conn) AlbumArt(uri string) ([]byte, error) {
	var buf []byte
	for {
		chunk, total, err := c.albumArtChunk(uri, len(buf))
		if err != nil {
			return nil, err
		}
		buf = append(buf, chunk...)
		if len(buf) >= total || len(chunk) == 0 {
			return buf, nil
		}
	}
}

func (c *Conn) albumArtChunk(uri string, offset int) (chunk []byte, total int, err error) {
	c.conn.SetDeadline(time.Now().Add(commandTimeout))
	if _, err := fmt.Fprintf(c.conn, "readpicture %s %d\n", quote(uri), offset); err != nil {
		return nil, 0, err
	}
	size := 0
	for {
		line, err := c.readLine()
		if err != nil {
			return nil, 0, err
		}
		if strings.HasPrefix(line, "ACK ") {
			return nil, 0, parseAck(line)
		}
		k, v, _ := splitPair(line)
		switch k {
		case "size":
			total, _ = strconv.Atoi(v)
		case "binary":
			size, _ = strconv.Atoi(v)
			chunk = make([]byte, size)
			if _, err := readFull(c.rd, chunk); err != nil {
				return nil, 0, err
			}
			// binary payload is followed by a newline
			c.rd.ReadByte()
		default:
			if line == "OK" {
				return chunk, total, nil
			}
		}
	}
}

func readFull(rd *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := rd.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *Conn) Play(pos int) error {
	var err error
	if pos < 0 {
		_, err = c.command("play")
	} else {
		_, err = c.command("play %d", pos)
	}
	return err
}

func (c *Conn) TogglePause() error {
	_, err := c.command("pause")
	return err
}

func (c *Conn) Stop() error {
	_, err := c.command("stop")
	return err
}

func (c *Conn) Next() error {
	_, err := c.command("next")
	return err
}

func (c *Conn) Prev() error {
	_, err := c.command("previous")
	return err
}

func (c *Conn) SetVolume(vol int) error {
	if vol < 0 {
		vol = 0
	}
	if vol > 100 {
		vol = 100
	}
	_, err := c.command("setvol %d", vol)
	return err
}

func (c *Conn) SeekBy(offset time.Duration) error {
	_, err := c.command("seekcur %+.0f", offset.Seconds())
	return err
}

func (c *Conn) Add(uri string) error {
	_, err := c.command("add %s", quote(uri))
	return err
}

func (c *Conn) Delete(pos int) error {
	_, err := c.command("delete %d", pos)
	return err
}

func (c *Conn) Clear() error {
	_, err := c.command("clear")
	return err
}

func splitPair(line string) (key, value string, ok bool) {
	i := strings.Index(line, ": ")
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+2:], true
}

func parseStatus(lines []string) Status {
	st := Status{SongID: -1}
	for _, line := range lines {
		k, v, ok := splitPair(line)
		if !ok {
			continue
		}
		switch k {
		case "state":
			switch v {
			case "play":
				st.State = StatePlaying
			case "pause":
				st.State = StatePaused
			default:
				st.State = StateStopped
			}
		case "volume":
			st.Volume, _ = strconv.Atoi(v)
		case "elapsed":
			st.Elapsed = parseSeconds(v)
		case "duration":
			st.Duration = parseSeconds(v)
		case "songid":
			st.SongID, _ = strconv.Atoi(v)
		case "repeat":
			st.Repeat = v == "1"
		case "random":
			st.Random = v == "1"
		case "single":
			st.Single = v != "0"
		case "consume":
			st.Consume = v != "0"
		}
	}
	return st
}

// parseSongs decodes a run of song blocks; each block starts at a "file:"
// line.
func parseSongs(lines []string) []Song {
	var out []Song
	cur := -1
	for _, line := range lines {
		k, v, ok := splitPair(line)
		if !ok {
			continue
		}
		if k == "file" {
			out = append(out, Song{File: v, ID: -1, Pos: -1})
			cur = len(out) - 1
			continue
		}
		if cur < 0 {
			continue
		}
		switch k {
		case "Title":
			out[cur].Title = v
		case "Artist":
			out[cur].Artist = v
		case "Album":
			out[cur].Album = v
		case "Time":
			secs, _ := strconv.Atoi(v)
			out[cur].Duration = time.Duration(secs) * time.Second
		case "duration":
			out[cur].Duration = parseSeconds(v)
		case "Id":
			out[cur].ID, _ = strconv.Atoi(v)
		case "Pos":
			out[cur].Pos, _ = strconv.Atoi(v)
		}
	}
	return out
}

func parseEntries(lines []string) []Entry {
	var out []Entry
	cur := -1
	for _, line := range lines {
		k, v, ok := splitPair(line)
		if !ok {
			continue
		}
		switch k {
		case "directory":
			out = append(out, Entry{URI: v, Dir: true})
			cur = -1
		case "playlist":
			out = append(out, Entry{URI: v, Playlist: true})
			cur = -1
		case "file":
			out = append(out, Entry{URI: v, Song: Song{File: v, ID: -1, Pos: -1}})
			cur = len(out) - 1
		case "Title":
			if cur >= 0 {
				out[cur].Song.Title = v
			}
		case "Artist":
			if cur >= 0 {
				out[cur].Song.Artist = v
			}
		case "Album":
			if cur >= 0 {
				out[cur].Song.Album = v
			}
		case "duration":
			if cur >= 0 {
				out[cur].Song.Duration = parseSeconds(v)
			}
		}
	}
	return out
}

func parseSeconds(v string) time.Duration {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
