package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// ErrNoAudioBackend is returned by a context factory when no output exists
var ErrNoAudioBackend = errors.New("no audio backend available")

// DefaultSampleRate is used for rendered effects
const DefaultSampleRate beep.SampleRate = 44100

// Context is an audio output clock that voices are scheduled on
type Context interface {
	SampleRate() beep.SampleRate
	// Now is the current position of the context clock
	Now() time.Duration
	Suspended() bool
	Resume() error
	// Schedule starts s at the absolute clock position at; s plays for length
	Schedule(at, length time.Duration, s beep.Streamer)
}

// ContextFactory opens the audio output context
type ContextFactory func() (Context, error)

// NoBackend is a factory for environments without audio output
func NoBackend() (Context, error) {
	return nil, ErrNoAudioBackend
}

type voice struct {
	start    int
	streamer beep.Streamer
}

// Timeline is an offline context. Voices are collected and mixed into one
// stream when the timeline is rendered. A new timeline starts suspended.
type Timeline struct {
	mu        sync.Mutex
	rate      beep.SampleRate
	now       int
	suspended bool
	voices    []voice
	end       int
}

// NewTimeline creates a suspended timeline at the given sample rate
func NewTimeline(rate beep.SampleRate) *Timeline {
	return &Timeline{rate: rate, suspended: true}
}

func (t *Timeline) SampleRate() beep.SampleRate {
	return t.rate
}

func (t *Timeline) Now() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rate.D(t.now)
}

// Advance moves the clock forward by d
func (t *Timeline) Advance(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now += t.rate.N(d)
}

func (t *Timeline) Suspended() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suspended
}

func (t *Timeline) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.suspended = false
	return nil
}

// Schedule appends a voice that ends at at+length
func (t *Timeline) Schedule(at, length time.Duration, s beep.Streamer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	start := max(t.rate.N(at), 0)
	t.voices = append(t.voices, voice{start: start, streamer: s})
	if end := start + t.rate.N(length); end > t.end {
		t.end = end
	}
}

// Voices returns the number of scheduled voices
func (t *Timeline) Voices() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.voices)
}

// Len is the rendered length in samples
func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.end
}

// Duration is the rendered length
func (t *Timeline) Duration() time.Duration {
	return t.rate.D(t.Len())
}

// Render mixes every voice into a single finite stream.
// Voice streamers are consumed, so a timeline renders once.
func (t *Timeline) Render() beep.Streamer {
	t.mu.Lock()
	defer t.mu.Unlock()

	streams := make([]beep.Streamer, 0, len(t.voices))
	for _, v := range t.voices {
		streams = append(streams, beep.Seq(beep.Silence(v.start), v.streamer))
	}
	return beep.Take(t.end, beep.Seq(beep.Mix(streams...), beep.Silence(-1)))
}
