package mpd

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const maxIdleBackoff = 30 * time.Second

// Listener owns a dedicated idle connection and converts server pushes into
// Notifications on its channel. It reconnects with backoff on its own; the
// UI only ever sees connected/disconnected state changes.
type Listener struct {
	addr     string
	password string
	ch       chan Notification
}

// NewListener prepares a listener for the given daemon. Run must be started
// on its own goroutine.
func NewListener(addr, password string) *Listener {
	return &Listener{addr: addr, password: password, ch: make(chan Notification, 64)}
}

// Notifications is the channel the dispatcher consumes. Closed when Run
// returns.
func (l *Listener) Notifications() <-chan Notification {
	return l.ch
}

// Run blocks until ctx is cancelled, reconnecting as needed. Safe to call
// exactly once.
func (l *Listener) Run(ctx context.Context) {
	defer close(l.ch)
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		err := l.session(ctx)
		if ctx.Err() != nil {
			return
		}
		log.Warn("idle connection lost", "addr", l.addr, "err", err, "retry_in", backoff)
		l.send(ctx, Notification{Kind: ConnectionChanged, Connected: false})
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxIdleBackoff {
			backoff = maxIdleBackoff
		}
	}
}

// session holds one idle connection open, emitting a notification per
// changed subsystem until the connection dies.
func (l *Listener) session(ctx context.Context) error {
	d := net.Dialer{Timeout: commandTimeout}
	nc, err := d.DialContext(ctx, "tcp", l.addr)
	if err != nil {
		return fmt.Errorf("dial idle connection: %w", err)
	}
	defer nc.Close()
	stop := context.AfterFunc(ctx, func() { nc.Close() })
	defer stop()

	rd := bufio.NewReader(nc)
	line, err := rd.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read greeting: %w", err)
	}
	if !strings.HasPrefix(line, "OK MPD") {
		return fmt.Errorf("unexpected greeting %q", strings.TrimSpace(line))
	}
	if l.password != "" {
		if err := roundTrip(nc, rd, "password "+quote(l.password)); err != nil {
			return fmt.Errorf("authenticate idle connection: %w", err)
		}
	}
	l.send(ctx, Notification{Kind: ConnectionChanged, Connected: true})

	for {
		// idle blocks server-side until some subsystem changes
		if _, err := fmt.Fprintf(nc, "idle\n"); err != nil {
			return fmt.Errorf("send idle: %w", err)
		}
		for {
			line, err := rd.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read idle response: %w", err)
			}
			line = strings.TrimSuffix(line, "\n")
			if line == "OK" {
				break
			}
			if strings.HasPrefix(line, "ACK ") {
				return parseAck(line)
			}
			if sub, ok := strings.CutPrefix(line, "changed: "); ok {
				if kind, consumed := subsystemKind(sub); consumed {
					log.Debug("idle event", "subsystem", sub)
					l.send(ctx, Notification{Kind: kind})
				} else {
					log.Debug("ignoring idle subsystem", "subsystem", sub)
				}
			}
		}
	}
}

func (l *Listener) send(ctx context.Context, n Notification) {
	select {
	case l.ch <- n:
	case <-ctx.Done():
	}
}

func roundTrip(nc net.Conn, rd *bufio.Reader, cmd string) error {
	if _, err := fmt.Fprintf(nc, "%s\n", cmd); err != nil {
		return err
	}
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSuffix(line, "\n")
		if line == "OK" {
			return nil
		}
		if strings.HasPrefix(line, "ACK ") {
			return parseAck(line)
		}
	}
}
