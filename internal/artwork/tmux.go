package artwork

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// InTmux reports whether the client runs inside a tmux session. Graphics
// escape sequences must then be wrapped in a passthrough envelope.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}

// EnablePassthrough asks tmux to forward wrapped escape sequences to the
// outer terminal. Needed once per pane before graphics can display.
func EnablePassthrough() error {
	cmd := exec.Command("tmux", "set", "-p", "allow-passthrough", "on")
	var out bytes.Buffer
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux set allow-passthrough: %w: %s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

// Passthrough wraps a raw escape sequence in the tmux passthrough envelope,
// doubling embedded ESC bytes as the protocol requires. Sequences without
// escapes (plain text blobs) pass through unchanged.
func Passthrough(blob string) string {
	if !strings.Contains(blob, "\x1b") {
		return blob
	}
	return "\x1bPtmux;" + strings.ReplaceAll(blob, "\x1b", "\x1b\x1b") + "\x1b\\"
}
