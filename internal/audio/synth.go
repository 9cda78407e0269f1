package audio

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/logger"
)

const (
	// DefaultVolume is the peak gain the presets use for a regular cue
	DefaultVolume = 0.1

	toneFloor  = 0.0001
	noiseGain  = 0.05
	noiseFloor = 0.001
)

// Tone is one oscillator voice. Times are relative to the moment it is played.
type Tone struct {
	Frequency float64       `json:"frequency"`
	Waveform  Waveform      `json:"waveform"`
	Duration  time.Duration `json:"duration"`
	Delay     time.Duration `json:"delay"`
	// Volume is the starting gain. Zero is a silent voice, negative values
	// are treated as zero.
	Volume float64 `json:"volume"`
}

// Synth schedules tones and noise bursts on a single audio context that is
// opened the first time anything is played. Without a backend every call is
// a no-op.
type Synth struct {
	newContext ContextFactory

	once sync.Once
	ctx  Context

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynth creates a synth. rng feeds the noise generator.
func NewSynth(factory ContextFactory, rng *rand.Rand) *Synth {
	if factory == nil {
		factory = NoBackend
	}
	return &Synth{newContext: factory, rng: rng}
}

// context opens the output on first use and resumes it when suspended.
// It returns nil when audio is unavailable.
func (s *Synth) context() Context {
	s.once.Do(func() {
		ctx, err := s.newContext()
		if err != nil {
			if errors.Is(err, ErrNoAudioBackend) {
				logger.Debug("Audio disabled, no backend", logger.Fields{})
			} else {
				logger.Warn("Audio context unavailable", logger.Fields{"error": err.Error()})
			}
			return
		}
		s.ctx = ctx
	})

	if s.ctx == nil {
		return nil
	}
	if s.ctx.Suspended() {
		if err := s.ctx.Resume(); err != nil {
			logger.Warn("Failed to resume audio context", logger.Fields{"error": err.Error()})
		}
	}
	return s.ctx
}

// Enabled reports whether the synth has a working output context
func (s *Synth) Enabled() bool {
	return s.context() != nil
}

// PlayTone schedules an oscillator whose gain decays exponentially from the
// tone volume to near silence by Delay+Duration, where it stops.
func (s *Synth) PlayTone(t Tone) {
	ctx := s.context()
	if ctx == nil || t.Duration <= 0 {
		return
	}
	if t.Volume < 0 {
		t.Volume = 0
	}
	if t.Waveform == "" {
		t.Waveform = WaveSine
	}

	rate := ctx.SampleRate()
	length := rate.N(t.Duration)
	osc := newOscillator(t.Frequency, t.Waveform, length, rate)
	ctx.Schedule(ctx.Now()+t.Delay, t.Duration, newDecay(osc, t.Volume, toneFloor, length))
}

// PlayNoise plays a burst of white noise starting now
func (s *Synth) PlayNoise(duration time.Duration) {
	ctx := s.context()
	if ctx == nil || duration <= 0 {
		return
	}

	rate := ctx.SampleRate()
	length := rate.N(duration)

	s.mu.Lock()
	buf := newNoise(s.rng, length)
	s.mu.Unlock()

	ctx.Schedule(ctx.Now(), duration, newDecay(buf, noiseGain, noiseFloor, length))
}
