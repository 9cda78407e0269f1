package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"
)

// Waveform is the periodic shape of an oscillator
type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveSquare   Waveform = "square"
	WaveSawtooth Waveform = "sawtooth"
	WaveTriangle Waveform = "triangle"
)

// oscillator streams a fixed number of samples of a periodic wave
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Waveform
	rate     beep.SampleRate
}

func newOscillator(freq float64, wave Waveform, length int, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, length: length, wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSawtooth:
			val = 2 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// noise streams a pre-filled buffer of uniform samples in [-1, 1]
type noise struct {
	buf      []float64
	position int
}

func newNoise(rng *rand.Rand, length int) beep.Streamer {
	buf := make([]float64, length)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return &noise{buf: buf}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.position >= len(n.buf) {
		return 0, false
	}
	count := copy2(samples, n.buf[n.position:])
	n.position += count
	return count, true
}

func (n *noise) Err() error { return nil }

func copy2(dst [][2]float64, src []float64) int {
	count := min(len(dst), len(src))
	for i := 0; i < count; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return count
}

// decay scales a stream by a gain that falls exponentially from start to
// end over length samples, matching an exponential ramp on a gain node.
type decay struct {
	streamer beep.Streamer
	start    float64
	ratio    float64
	length   int
	position int
}

func newDecay(s beep.Streamer, start, end float64, length int) beep.Streamer {
	ratio := 1.0
	if start > 0 && end > 0 {
		ratio = end / start
	}
	return &decay{streamer: s, start: start, ratio: ratio, length: length}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := d.start
		if d.length > 0 {
			gain = d.start * math.Pow(d.ratio, float64(d.position)/float64(d.length))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
