package particles

import (
	"testing"

	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = []string{"#FF69B4", "#FFD700", "#00BFFF"}

func TestGenerateBatchSize(t *testing.T) {
	tests := []struct {
		anim theme.AnimationType
		want int
	}{
		{theme.AnimationSnow, 100},
		{theme.AnimationConfetti, 70},
		{theme.AnimationSparkles, 40},
		{theme.AnimationHearts, 50},
		{theme.AnimationBubbles, 50},
		{theme.AnimationType("lasers"), 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.anim), func(t *testing.T) {
			batch := Generate(NewRand(1), tt.anim, testPalette)
			assert.Len(t, batch, tt.want)
			for i, p := range batch {
				assert.Equal(t, i, p.ID)
			}
		})
	}
}

func TestGenerateShapes(t *testing.T) {
	allowed := map[theme.AnimationType]map[Shape]bool{
		theme.AnimationConfetti: {ShapeCircle: true, ShapeSquare: true, ShapeTriangle: true, ShapeSquiggle: true},
		theme.AnimationHearts:   {ShapeHeart: true},
		theme.AnimationSparkles: {ShapeStar: true},
		theme.AnimationSnow:     {ShapeCircle: true},
		theme.AnimationBubbles:  {ShapeCircle: true},
	}

	for anim, shapes := range allowed {
		for _, p := range Generate(NewRand(7), anim, testPalette) {
			assert.True(t, shapes[p.Shape], "%s produced %s", anim, p.Shape)
		}
	}
}

func TestConfettiUsesEveryShape(t *testing.T) {
	seen := map[Shape]bool{}
	for _, p := range Generate(NewRand(3), theme.AnimationConfetti, testPalette) {
		seen[p.Shape] = true
	}
	assert.Len(t, seen, 4)
}

func TestGenerateRanges(t *testing.T) {
	for _, anim := range theme.Animations {
		amp := swayAmplitude(anim)
		base := baseDuration(anim)

		for _, p := range Generate(NewRand(42), anim, testPalette) {
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.Less(t, p.X, 100.0)
			if anim == theme.AnimationSparkles {
				assert.GreaterOrEqual(t, p.YStart, 0.0)
				assert.Less(t, p.YStart, 100.0)
			} else {
				assert.Greater(t, p.YStart, -30.0)
				assert.LessOrEqual(t, p.YStart, -10.0)
			}
			assert.GreaterOrEqual(t, p.Size, 0.0)
			assert.Less(t, p.Size, 1.0)
			assert.GreaterOrEqual(t, p.Duration, base)
			assert.Less(t, p.Duration, base+4)
			assert.GreaterOrEqual(t, p.Delay, 0.0)
			assert.Less(t, p.Delay, 5.0)
			assert.GreaterOrEqual(t, p.Rotation, 0.0)
			assert.Less(t, p.Rotation, 360.0)
			assert.Contains(t, testPalette, p.Color)

			require.Len(t, p.Sway, 4)
			assert.Equal(t, p.X, p.Sway[0])
			for _, s := range p.Sway[1:] {
				assert.InDelta(t, p.X, s, amp/2+1e-9)
			}
		}
	}
}

func TestGenerateSingleColorPalette(t *testing.T) {
	palette := []string{"#FFFFFF"}
	for range 2 {
		for _, p := range Generate(NewRand(9), theme.AnimationSnow, palette) {
			assert.Equal(t, "#FFFFFF", p.Color)
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := Generate(NewRand(2024), theme.AnimationConfetti, testPalette)
	b := Generate(NewRand(2024), theme.AnimationConfetti, testPalette)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different batches (-a +b):\n%s", diff)
	}

	c := Generate(NewRand(2025), theme.AnimationConfetti, testPalette)
	assert.NotEqual(t, a, c)
}

func TestShapePath(t *testing.T) {
	assert.Empty(t, ShapeSquare.Path())
	for _, s := range []Shape{ShapeCircle, ShapeTriangle, ShapeStar, ShapeHeart, ShapeSquiggle} {
		assert.NotEmpty(t, s.Path(), s)
	}
}
