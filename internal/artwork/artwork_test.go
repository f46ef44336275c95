package artwork

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

type stubEncoder struct {
	calls int
	err   error
}

func (s *stubEncoder) Encode(data []byte, width, height int) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "blob", nil
}

func TestPipeline_CacheHitSkipsWorker(t *testing.T) {
	enc := &stubEncoder{}
	p := NewPipeline(enc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	data := []byte("cover bytes")
	if _, cached := p.Request(data, 20, 10); cached {
		t.Fatal("first request should miss the cache")
	}
	res := <-p.Results()
	p.Complete(res)
	if res.Err != nil {
		t.Fatalf("encode failed: %v", res.Err)
	}

	blob, cached := p.Request(data, 20, 10)
	if !cached || blob != "blob" {
		t.Errorf("second request should be served from cache, got %q cached=%v", blob, cached)
	}
	if enc.calls != 1 {
		t.Errorf("encoder ran %d times, want 1", enc.calls)
	}
}

func TestPipeline_InflightDeduplicated(t *testing.T) {
	enc := &stubEncoder{}
	p := NewPipeline(enc)
	// worker not started: requests stay queued, second identical request
	// must not enqueue again
	data := []byte("cover")
	p.Request(data, 10, 5)
	p.Request(data, 10, 5)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	<-p.Results()
	select {
	case res := <-p.Results():
		t.Fatalf("duplicate in-flight request produced a second result: %+v", res)
	case <-time.After(50 * time.Millisecond):
	}
	if enc.calls != 1 {
		t.Errorf("encoder ran %d times, want 1", enc.calls)
	}
}

func TestPipeline_DifferentSizesAreDifferentKeys(t *testing.T) {
	data := []byte("cover")
	a := Key{Source: SourceID(data), Width: 10, Height: 5}
	b := Key{Source: SourceID(data), Width: 12, Height: 5}
	if a == b {
		t.Fatal("size must be part of the cache key")
	}
}

func TestPipeline_ErrorNotCached(t *testing.T) {
	enc := &stubEncoder{err: errors.New("boom")}
	p := NewPipeline(enc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	data := []byte("cover")
	p.Request(data, 10, 5)
	res := <-p.Results()
	p.Complete(res)
	if res.Err == nil {
		t.Fatal("expected encode error")
	}
	if _, ok := p.Cached(res.Key); ok {
		t.Error("failed encode must not be cached")
	}
}

func TestHalfblockEncoder_SizesOutput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	out, err := HalfblockEncoder{}.Encode(buf.Bytes(), 4, 2)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	lines := bytes.Split([]byte(out), []byte("\n"))
	if len(lines) != 2 {
		t.Errorf("got %d rows, want 2", len(lines))
	}
}

func TestHalfblockEncoder_RejectsGarbage(t *testing.T) {
	if _, err := (HalfblockEncoder{}).Encode([]byte("not an image"), 4, 2); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPassthrough(t *testing.T) {
	plain := Passthrough("no escapes here")
	if plain != "no escapes here" {
		t.Errorf("plain blobs must pass unchanged, got %q", plain)
	}
	wrapped := Passthrough("\x1b_Ga=T\x1b\\")
	if !bytes.HasPrefix([]byte(wrapped), []byte("\x1bPtmux;")) {
		t.Errorf("escape sequences must be wrapped, got %q", wrapped)
	}
	if !bytes.Contains([]byte(wrapped), []byte("\x1b\x1b_Ga=T")) {
		t.Errorf("embedded ESC bytes must be doubled, got %q", wrapped)
	}
}
