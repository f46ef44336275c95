// Package artwork is the image pipeline collaborator: it turns raw album art
// bytes into terminal-drawable blobs off the UI goroutine, memoizing by
// (source, cell size) so repeated renders of an unchanged image are free.
package artwork

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/charmbracelet/log"
)

// Key identifies one encode result: a hash of the source bytes plus the
// target cell size. A stale completion for a superseded key is discarded by
// the consumer, never drawn.
type Key struct {
	Source string // hex digest of the source bytes
	Width  int
	Height int
}

// SourceID hashes raw image bytes into the cache key's source component.
func SourceID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// Encoder converts raw image bytes into an opaque drawable blob for a cell
// box. Concrete escape-sequence protocols live behind this interface.
type Encoder interface {
	Encode(data []byte, width, height int) (string, error)
}

// Result is a completed encode, delivered asynchronously.
type Result struct {
	Key  Key
	Blob string
	Err  error
}

type request struct {
	key  Key
	data []byte
}

// Pipeline runs an encode worker and a completion cache. Requests are
// idempotent per key; a request whose key is already cached or in flight is
// dropped.
type Pipeline struct {
	enc      Encoder
	requests chan request
	results  chan Result
	cache    map[Key]string
	inflight map[Key]bool
}

// NewPipeline creates a pipeline around enc. Start must be called before
// Request.
func NewPipeline(enc Encoder) *Pipeline {
	return &Pipeline{
		enc:      enc,
		requests: make(chan request, 16),
		results:  make(chan Result, 16),
		cache:    make(map[Key]string),
		inflight: make(map[Key]bool),
	}
}

// Results delivers completed encodes to the dispatcher.
func (p *Pipeline) Results() <-chan Result {
	return p.results
}

// Start launches the worker goroutine. It exits when ctx is cancelled.
func (p *Pipeline) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case req := <-p.requests:
				blob, err := p.enc.Encode(req.data, req.key.Width, req.key.Height)
				if err != nil {
					err = fmt.Errorf("encode artwork: %w", err)
					log.Warn("artwork encode failed", "key", req.key, "err", err)
				}
				select {
				case p.results <- Result{Key: req.key, Blob: blob, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

// Request queues an encode unless the key is cached or already in flight.
// Returns the cached blob when available. Call only from the dispatch
// goroutine; the cache has a single owner by design.
func (p *Pipeline) Request(data []byte, width, height int) (blob string, cached bool) {
	key := Key{Source: SourceID(data), Width: width, Height: height}
	if b, ok := p.cache[key]; ok {
		return b, true
	}
	if p.inflight[key] {
		return "", false
	}
	select {
	case p.requests <- request{key: key, data: data}:
		p.inflight[key] = true
	default:
		// worker backlog full; the next render will retry
		log.Debug("artwork request dropped, queue full", "key", key)
	}
	return "", false
}

// Complete records a finished encode in the cache. The dispatcher calls it
// for every Result it consumes, then checks Current against its own wanted
// key to decide whether to draw.
func (p *Pipeline) Complete(res Result) {
	delete(p.inflight, res.Key)
	if res.Err == nil {
		p.cache[res.Key] = res.Blob
	}
}

// Cached looks up a completed blob by key.
func (p *Pipeline) Cached(key Key) (string, bool) {
	b, ok := p.cache[key]
	return b, ok
}
