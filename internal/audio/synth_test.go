package audio

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduled struct {
	at     time.Duration
	length time.Duration
}

// recordingContext captures scheduled voices without producing sound
type recordingContext struct {
	now       time.Duration
	suspended bool
	resumeErr error
	resumes   int
	voices    []scheduled
	streams   []beep.Streamer
}

func (r *recordingContext) SampleRate() beep.SampleRate { return 8000 }
func (r *recordingContext) Now() time.Duration          { return r.now }
func (r *recordingContext) Suspended() bool             { return r.suspended }

func (r *recordingContext) Resume() error {
	r.resumes++
	if r.resumeErr != nil {
		return r.resumeErr
	}
	r.suspended = false
	return nil
}

func (r *recordingContext) Schedule(at, length time.Duration, s beep.Streamer) {
	r.voices = append(r.voices, scheduled{at: at, length: length})
	r.streams = append(r.streams, s)
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSynthWithoutBackendIsSilent(t *testing.T) {
	s := NewSynth(NoBackend, testRand())

	assert.NotPanics(t, func() {
		s.PlayTone(Tone{Frequency: 440, Duration: time.Second})
		s.PlayNoise(time.Second)
		s.Play(EffectCelebration)
	})
	assert.False(t, s.Enabled())
}

func TestSynthNilFactoryIsSilent(t *testing.T) {
	s := NewSynth(nil, testRand())
	assert.NotPanics(t, func() { s.PlayTone(Tone{Frequency: 440, Duration: time.Second}) })
	assert.False(t, s.Enabled())
}

func TestSynthOpensContextOnce(t *testing.T) {
	calls := 0
	ctx := &recordingContext{}
	s := NewSynth(func() (Context, error) {
		calls++
		return ctx, nil
	}, testRand())

	s.PlayTone(Tone{Frequency: 440, Duration: time.Second})
	s.PlayTone(Tone{Frequency: 880, Duration: time.Second})
	s.PlayNoise(time.Second)

	assert.Equal(t, 1, calls)
	assert.Len(t, ctx.voices, 3)
}

func TestSynthFactoryErrorIsNotRetried(t *testing.T) {
	calls := 0
	s := NewSynth(func() (Context, error) {
		calls++
		return nil, errors.New("device busy")
	}, testRand())

	s.PlayTone(Tone{Frequency: 440, Duration: time.Second})
	s.PlayTone(Tone{Frequency: 440, Duration: time.Second})
	assert.Equal(t, 1, calls)
}

func TestSynthResumesSuspendedContext(t *testing.T) {
	ctx := &recordingContext{suspended: true}
	s := NewSynth(func() (Context, error) { return ctx, nil }, testRand())

	s.PlayTone(Tone{Frequency: 440, Duration: time.Second})
	assert.Equal(t, 1, ctx.resumes)
	assert.False(t, ctx.suspended)
	assert.Len(t, ctx.voices, 1)
}

func TestSynthResumeFailureIsSwallowed(t *testing.T) {
	ctx := &recordingContext{suspended: true, resumeErr: errors.New("not allowed")}
	s := NewSynth(func() (Context, error) { return ctx, nil }, testRand())

	assert.NotPanics(t, func() { s.PlayTone(Tone{Frequency: 440, Duration: time.Second}) })
	assert.Equal(t, 1, ctx.resumes)
	assert.Len(t, ctx.voices, 1)
}

func TestPlayToneSchedulesRelativeToNow(t *testing.T) {
	ctx := &recordingContext{now: 2 * time.Second}
	s := NewSynth(func() (Context, error) { return ctx, nil }, testRand())

	s.PlayTone(Tone{Frequency: 440, Duration: 300 * time.Millisecond, Delay: 100 * time.Millisecond, Volume: DefaultVolume})
	s.PlayNoise(200 * time.Millisecond)

	require.Len(t, ctx.voices, 2)
	assert.Equal(t, scheduled{at: 2100 * time.Millisecond, length: 300 * time.Millisecond}, ctx.voices[0])
	assert.Equal(t, scheduled{at: 2 * time.Second, length: 200 * time.Millisecond}, ctx.voices[1])
}

func TestPlayToneVolume(t *testing.T) {
	peak := func(s beep.Streamer) float64 {
		buf := make([][2]float64, 64)
		n, _ := s.Stream(buf)
		max := 0.0
		for _, smp := range buf[:n] {
			max = math.Max(max, math.Abs(smp[0]))
		}
		return max
	}

	tests := []struct {
		name   string
		volume float64
		silent bool
	}{
		{"explicit", 0.05, false},
		{"preset default", DefaultVolume, false},
		{"zero is silent", 0, true},
		{"negative is silent", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &recordingContext{}
			s := NewSynth(func() (Context, error) { return ctx, nil }, testRand())

			s.PlayTone(Tone{Frequency: 440, Waveform: WaveSquare, Duration: 100 * time.Millisecond, Volume: tt.volume})

			require.Len(t, ctx.streams, 1)
			got := peak(ctx.streams[0])
			if tt.silent {
				assert.Zero(t, got)
			} else {
				assert.Greater(t, got, 0.0)
				assert.LessOrEqual(t, got, tt.volume+1e-12)
			}
		})
	}
}

func TestOverlappingPlaysAreIndependent(t *testing.T) {
	ctx := &recordingContext{}
	s := NewSynth(func() (Context, error) { return ctx, nil }, testRand())

	s.Play(EffectPop)
	s.Play(EffectPop)
	assert.Len(t, ctx.voices, 4)
}

func TestEffectPresets(t *testing.T) {
	tests := []struct {
		effect Effect
		tones  int
		noise  time.Duration
	}{
		{EffectPop, 2, 0},
		{EffectSparkle, 5, 0},
		{EffectChime, 2, 0},
		{EffectHarp, 6, 0},
		{EffectCelebration, 3, 300 * time.Millisecond},
		{EffectSuccess, 2, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.effect), func(t *testing.T) {
			assert.Len(t, tt.effect.Tones(), tt.tones)
			assert.Equal(t, tt.noise, tt.effect.Noise())
		})
	}

	sparkle := EffectSparkle.Tones()
	for i, tone := range sparkle {
		assert.Equal(t, time.Duration(80*i)*time.Millisecond, tone.Delay)
		assert.Equal(t, 0.05, tone.Volume)
	}

	harp := EffectHarp.Tones()
	assert.Equal(t, 440.0, harp[0].Frequency)
	assert.Equal(t, 740.0, harp[5].Frequency)
	assert.Equal(t, 750*time.Millisecond, harp[5].Delay)
	assert.Equal(t, WaveTriangle, harp[0].Waveform)

	pop := EffectPop.Tones()
	assert.Equal(t, 50*time.Millisecond, pop[1].Delay)
	assert.Equal(t, WaveTriangle, pop[1].Waveform)
}

func TestForAnimation(t *testing.T) {
	assert.Equal(t, EffectCelebration, ForAnimation(theme.AnimationConfetti))
	assert.Equal(t, EffectHarp, ForAnimation(theme.AnimationHearts))
	assert.Equal(t, EffectChime, ForAnimation(theme.AnimationSnow))
	assert.Equal(t, EffectSparkle, ForAnimation(theme.AnimationSparkles))
	assert.Equal(t, EffectPop, ForAnimation(theme.AnimationBubbles))
	assert.Equal(t, EffectPop, ForAnimation(theme.AnimationType("unknown")))
}

func TestParseEffect(t *testing.T) {
	e, ok := ParseEffect("harp")
	assert.True(t, ok)
	assert.Equal(t, EffectHarp, e)

	_, ok = ParseEffect("kazoo")
	assert.False(t, ok)
}

func TestOscillatorWaveformsStayInRange(t *testing.T) {
	for _, w := range []Waveform{WaveSine, WaveSquare, WaveSawtooth, WaveTriangle} {
		osc := newOscillator(440, w, 1000, 8000)
		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := osc.Stream(buf)
			for _, s := range buf[:n] {
				assert.LessOrEqual(t, math.Abs(s[0]), 1.0, w)
			}
			total += n
			if !ok {
				break
			}
		}
		assert.Equal(t, 1000, total, w)
	}
}

func TestDecayIsExponential(t *testing.T) {
	const length = 1000
	ones := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})

	d := newDecay(ones, 0.1, 0.0001, length)
	buf := make([][2]float64, length)
	n, _ := d.Stream(buf)
	require.Equal(t, length, n)

	assert.InDelta(t, 0.1, buf[0][0], 1e-12)
	// halfway between 0.1 and 0.0001 on a log scale
	assert.InDelta(t, math.Sqrt(0.1*0.0001), buf[length/2][0], 1e-9)
	assert.Greater(t, buf[length-1][0], 0.0001)
	for i := 1; i < length; i++ {
		assert.Less(t, buf[i][0], buf[i-1][0])
	}
}
