package particles

import (
	"math"
	"testing"

	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
	"github.com/stretchr/testify/assert"
)

func TestMotionSparklesFloatInPlace(t *testing.T) {
	p := Particle{YStart: 40, Rotation: 10, Duration: 4, Delay: 1, Shape: ShapeStar, Size: 0.5}
	m := MotionFor(NewRand(1), p, theme.AnimationSparkles)

	assert.Equal(t, []float64{40, 35, 40}, m.Y)
	assert.Nil(t, m.X)
	assert.Equal(t, []float64{10, 30, 10}, m.Rotate)
	assert.Equal(t, []float64{0.5, 1.2, 0.5}, m.Scale)
	assert.Equal(t, []float64{0, 1, 0.5, 1, 0}, m.Opacity)
	assert.Equal(t, []float64{0, 0.5, 1}, m.Times)
	assert.Equal(t, 4.0, m.Duration)
	assert.Equal(t, 1.0, m.Delay)
	assert.Equal(t, 26.0, m.SizePx)
}

func TestMotionFallingTypes(t *testing.T) {
	tests := []struct {
		anim    theme.AnimationType
		opacity []float64
		turns   float64
		ease    string
	}{
		{theme.AnimationSnow, []float64{0, 0.8, 0.8, 0}, 1, "linear"},
		{theme.AnimationBubbles, []float64{0, 1, 0}, 5, "easeInOut"},
		{theme.AnimationHearts, []float64{1}, 5, "easeInOut"},
		{theme.AnimationConfetti, []float64{1}, 5, "easeInOut"},
	}

	for _, tt := range tests {
		t.Run(string(tt.anim), func(t *testing.T) {
			rng := NewRand(5)
			for _, p := range Generate(NewRand(5), tt.anim, testPalette) {
				m := MotionFor(rng, p, tt.anim)
				assert.Equal(t, []float64{p.YStart, 110}, m.Y)
				assert.Equal(t, p.Sway[:], m.X)
				assert.Equal(t, tt.opacity, m.Opacity)
				assert.Equal(t, tt.ease, m.Ease)
				assert.Equal(t, []float64{0, 0.33, 0.66, 1}, m.Times)
				assert.InDelta(t, 360*tt.turns, math.Abs(m.Rotate[1]-m.Rotate[0]), 1e-9)
			}
		})
	}
}

func TestSizePx(t *testing.T) {
	assert.Equal(t, 13.0, SizePx(Particle{Shape: ShapeSquare, Size: 0.5}, theme.AnimationConfetti))
	assert.Equal(t, 15.0, SizePx(Particle{Shape: ShapeCircle, Size: 0.5}, theme.AnimationSnow))
	assert.Equal(t, 26.0, SizePx(Particle{Shape: ShapeHeart, Size: 0.5}, theme.AnimationHearts))
}

func TestAnimateAttachesPaths(t *testing.T) {
	batch := Generate(NewRand(11), theme.AnimationHearts, testPalette)
	out := Animate(NewRand(11), batch, theme.AnimationHearts)

	assert.Len(t, out, len(batch))
	for i, a := range out {
		assert.Equal(t, batch[i], a.Particle)
		assert.Equal(t, ShapeHeart.Path(), a.Path)
	}
}

func TestMotionKeyframeShapes(t *testing.T) {
	anims := []theme.AnimationType{
		theme.AnimationConfetti,
		theme.AnimationHearts,
		theme.AnimationSnow,
		theme.AnimationBubbles,
		theme.AnimationSparkles,
	}

	for _, anim := range anims {
		t.Run(string(anim), func(t *testing.T) {
			rng := NewRand(9)
			for _, p := range Generate(NewRand(9), anim, testPalette) {
				m := MotionFor(rng, p, anim)

				// sway is the only track laid on the time grid
				if m.X != nil {
					assert.Len(t, m.X, len(m.Times))
					assert.Equal(t, p.X, m.X[0], "sway starts at the particle's own column")
					for _, x := range m.X {
						assert.InDelta(t, p.X, x, 10, "sway stays within a few vw of its column")
					}
				}
				assert.GreaterOrEqual(t, len(m.Y), 2)
				assert.GreaterOrEqual(t, len(m.Rotate), 2)
				assert.NotEmpty(t, m.Opacity)
				assert.Equal(t, 0.0, m.Times[0])
				assert.Equal(t, 1.0, m.Times[len(m.Times)-1])
				assert.Equal(t, p.YStart, m.Y[0])
			}
		})
	}
}

func TestMotionOpacityTracksFadeOut(t *testing.T) {
	p := Particle{YStart: -15, Duration: 5}
	for _, anim := range []theme.AnimationType{theme.AnimationBubbles, theme.AnimationSnow, theme.AnimationSparkles} {
		m := MotionFor(NewRand(3), p, anim)
		assert.Equal(t, 0.0, m.Opacity[0], anim)
		assert.Equal(t, 0.0, m.Opacity[len(m.Opacity)-1], anim)
	}
}
