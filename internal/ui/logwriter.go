package ui

import (
	"bytes"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"cadenza/internal/panes"
)

// LogWriter is an io.Writer that forwards complete log lines into the UI as
// messages, so the logs pane mirrors the log file. Safe for use as a logger
// sink from any goroutine; send must be the program's Send.
type LogWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	send func(tea.Msg)
}

// NewLogWriter creates a writer delivering lines through send.
func NewLogWriter(send func(tea.Msg)) *LogWriter {
	return &LogWriter{send: send}
}

// Write implements io.Writer, emitting one message per complete line.
func (w *LogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// partial line, keep it buffered
			w.buf.WriteString(line)
			break
		}
		w.send(panes.LogLineMsg{Line: line})
	}
	return len(p), nil
}
