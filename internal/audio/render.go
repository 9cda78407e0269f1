package audio

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/logger"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"golang.org/x/sync/singleflight"
)

// ErrAudioDisabled is returned by a library built without an audio backend
var ErrAudioDisabled = errors.New("audio rendering disabled")

// Rendered is an effect encoded as a mono 16-bit WAV file
type Rendered struct {
	Effect   Effect
	WAV      []byte
	Duration time.Duration
}

// Render plays e on a fresh offline timeline and encodes the result.
// The noise generator is seeded from the effect name so renders are stable.
func Render(e Effect, rate beep.SampleRate) (*Rendered, error) {
	timeline := NewTimeline(rate)
	synth := NewSynth(func() (Context, error) { return timeline, nil }, newRandFor(string(e)))
	synth.Play(e)

	var buf writeSeeker
	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(&buf, timeline.Render(), format); err != nil {
		return nil, fmt.Errorf("encode %s: %w", e, err)
	}

	return &Rendered{Effect: e, WAV: buf.Bytes(), Duration: timeline.Duration()}, nil
}

func newRandFor(name string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed>>1))
}

// RenderObserver is told about every render the library performs
type RenderObserver interface {
	RecordSoundRender(ctx context.Context, effect string, duration time.Duration, size int, err error)
}

// Library renders effects on demand and keeps the encoded files.
// Concurrent requests for the same effect share one render.
type Library struct {
	enabled  bool
	rate     beep.SampleRate
	observer RenderObserver

	mu    sync.RWMutex
	store map[Effect]*Rendered
	group singleflight.Group
}

// NewLibrary creates a library. When enabled is false every Get fails with
// ErrAudioDisabled. observer may be nil.
func NewLibrary(enabled bool, observer RenderObserver) *Library {
	return &Library{
		enabled:  enabled,
		rate:     DefaultSampleRate,
		observer: observer,
		store:    make(map[Effect]*Rendered),
	}
}

// Enabled reports whether the library renders anything
func (l *Library) Enabled() bool {
	return l.enabled
}

// Rendered returns how many effects are cached
func (l *Library) Rendered() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.store)
}

// Get returns the rendered effect, rendering it on first request
func (l *Library) Get(ctx context.Context, e Effect) (*Rendered, error) {
	if !l.enabled {
		return nil, ErrAudioDisabled
	}

	l.mu.RLock()
	r, ok := l.store[e]
	l.mu.RUnlock()
	if ok {
		return r, nil
	}

	v, err, _ := l.group.Do(string(e), func() (interface{}, error) {
		// another caller may have finished while we waited for the group
		l.mu.RLock()
		cached, ok := l.store[e]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		start := time.Now()
		r, err := Render(e, l.rate)
		took := time.Since(start)
		if l.observer != nil {
			size := 0
			if r != nil {
				size = len(r.WAV)
			}
			l.observer.RecordSoundRender(ctx, string(e), took, size, err)
		}
		if err != nil {
			logger.Error("Sound render failed", err, logger.Fields{"effect": string(e)})
			return nil, err
		}

		logger.Debug("Sound rendered", logger.Fields{
			"effect":      string(e),
			"duration_ms": took.Milliseconds(),
			"bytes":       len(r.WAV),
		})

		l.mu.Lock()
		l.store[e] = r
		l.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Rendered), nil
}

// Preload renders every effect up front
func (l *Library) Preload(ctx context.Context) error {
	for _, e := range Effects {
		if _, err := l.Get(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// writeSeeker is an in-memory io.WriteSeeker for the WAV encoder, which
// seeks back to patch the header sizes.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Write(p []byte) (int, error) {
	if need := w.pos + len(p); need > len(w.buf) {
		w.buf = append(w.buf, make([]byte, need-len(w.buf))...)
	}
	n := copy(w.buf[w.pos:], p)
	w.pos += n
	return n, nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(w.pos) + offset
	case io.SeekEnd:
		next = int64(len(w.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position %d", next)
	}
	w.pos = int(next)
	return next, nil
}

func (w *writeSeeker) Bytes() []byte {
	return w.buf
}
