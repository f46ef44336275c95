// Package hooks runs the configured on_song_change command. The hook runs in
// a PTY so curses-ish scripts behave, with song metadata in the environment.
// Hook failures degrade to a status-bar warning, never a crash.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/creack/pty"

	"cadenza/internal/mpd"
)

// hookTimeout bounds a runaway hook.
const hookTimeout = 30 * time.Second

// Runner executes the song-change hook.
type Runner struct {
	command string
}

// NewRunner creates a runner for the configured command line. An empty
// command disables the hook.
func NewRunner(command string) *Runner {
	return &Runner{command: command}
}

// Enabled reports whether a hook command is configured.
func (r *Runner) Enabled() bool {
	return r != nil && r.command != ""
}

// Run executes the hook for a song change, streaming its output to the log.
// The returned error is advisory; callers surface it as a warning.
func (r *Runner) Run(ctx context.Context, song mpd.Song) error {
	if !r.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, hookTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", r.command)
	cmd.Env = append(cmd.Environ(), songEnv(song)...)

	f, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start hook: %w", err)
	}
	defer f.Close()

	out, _ := io.ReadAll(f) // read error on pty close is normal
	if len(out) > 0 {
		log.Info("hook output", "cmd", r.command, "output", string(out))
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("hook %q: %w", r.command, err)
	}
	return nil
}

// songEnv exposes the changed song's metadata to the hook.
func songEnv(song mpd.Song) []string {
	return []string{
		"SONG_FILE=" + song.File,
		"SONG_TITLE=" + song.Title,
		"SONG_ARTIST=" + song.Artist,
		"SONG_ALBUM=" + song.Album,
		"SONG_DURATION=" + strconv.Itoa(int(song.Duration.Seconds())),
	}
}
