package audio

import (
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
)

// Effect names a preset sequence of tones
type Effect string

const (
	EffectPop         Effect = "pop"
	EffectSparkle     Effect = "sparkle"
	EffectChime       Effect = "chime"
	EffectHarp        Effect = "harp"
	EffectCelebration Effect = "celebration"
	EffectSuccess     Effect = "success"
)

// Effects lists every preset
var Effects = []Effect{
	EffectPop,
	EffectSparkle,
	EffectChime,
	EffectHarp,
	EffectCelebration,
	EffectSuccess,
}

// ParseEffect returns the named effect and whether it exists
func ParseEffect(raw string) (Effect, bool) {
	e := Effect(raw)
	for _, known := range Effects {
		if e == known {
			return e, true
		}
	}
	return e, false
}

// ForAnimation picks the effect that accompanies a particle animation
func ForAnimation(anim theme.AnimationType) Effect {
	switch anim {
	case theme.AnimationConfetti:
		return EffectCelebration
	case theme.AnimationHearts:
		return EffectHarp
	case theme.AnimationSnow:
		return EffectChime
	case theme.AnimationSparkles:
		return EffectSparkle
	case theme.AnimationBubbles:
		return EffectPop
	}
	return EffectPop
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Tones returns the tone sequence of an effect
func (e Effect) Tones() []Tone {
	switch e {
	case EffectSparkle:
		freqs := []float64{500, 800, 1100, 1400, 1800}
		tones := make([]Tone, len(freqs))
		for i, f := range freqs {
			tones[i] = Tone{Frequency: f, Waveform: WaveSine, Duration: ms(400), Delay: ms(80 * i), Volume: 0.05}
		}
		return tones
	case EffectChime:
		return []Tone{
			{Frequency: 800, Waveform: WaveSine, Duration: 2 * time.Second, Volume: DefaultVolume},
			{Frequency: 1200, Waveform: WaveSine, Duration: 2 * time.Second, Delay: ms(100), Volume: DefaultVolume},
		}
	case EffectHarp:
		freqs := []float64{440, 493, 554, 587, 659, 740}
		tones := make([]Tone, len(freqs))
		for i, f := range freqs {
			tones[i] = Tone{Frequency: f, Waveform: WaveTriangle, Duration: time.Second, Delay: ms(150 * i), Volume: 0.05}
		}
		return tones
	case EffectCelebration:
		return []Tone{
			{Frequency: 400, Waveform: WaveSquare, Duration: ms(200), Volume: DefaultVolume},
			{Frequency: 600, Waveform: WaveSquare, Duration: ms(200), Delay: ms(100), Volume: DefaultVolume},
			{Frequency: 800, Waveform: WaveSquare, Duration: ms(400), Delay: ms(200), Volume: DefaultVolume},
		}
	case EffectSuccess:
		return []Tone{
			{Frequency: 500, Waveform: WaveSine, Duration: ms(200), Volume: DefaultVolume},
			{Frequency: 1000, Waveform: WaveSine, Duration: ms(400), Delay: ms(100), Volume: DefaultVolume},
		}
	}
	return []Tone{
		{Frequency: 600, Waveform: WaveSine, Duration: ms(100), Volume: DefaultVolume},
		{Frequency: 300, Waveform: WaveTriangle, Duration: ms(100), Delay: ms(50), Volume: DefaultVolume},
	}
}

// Noise returns the length of the noise burst of an effect, zero for none
func (e Effect) Noise() time.Duration {
	if e == EffectCelebration {
		return ms(300)
	}
	return 0
}

// Play schedules every voice of e on the synth
func (s *Synth) Play(e Effect) {
	for _, t := range e.Tones() {
		s.PlayTone(t)
	}
	if d := e.Noise(); d > 0 {
		s.PlayNoise(d)
	}
}

// PlayForAnimation plays the effect that matches anim
func (s *Synth) PlayForAnimation(anim theme.AnimationType) {
	s.Play(ForAnimation(anim))
}
