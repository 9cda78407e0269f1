package particles

import (
	"math/rand/v2"

	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
)

// Shape is the outline a particle is drawn with
type Shape string

const (
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
	ShapeStar     Shape = "star"
	ShapeHeart    Shape = "heart"
	ShapeSquiggle Shape = "squiggle"
)

var confettiShapes = []Shape{ShapeCircle, ShapeSquare, ShapeTriangle, ShapeSquiggle}

// Path returns the SVG path of the shape in a 24x24 view box.
// Squares are drawn as plain boxes and have no path.
func (s Shape) Path() string {
	switch s {
	case ShapeHeart:
		return "M12 21.35l-1.45-1.32C5.4 15.36 2 12.28 2 8.5 2 5.42 4.42 3 7.5 3c1.74 0 3.41.81 4.5 2.09C13.09 3.81 14.76 3 16.5 3 19.58 3 22 5.42 22 8.5c0 3.78-3.4 6.86-8.55 11.54L12 21.35z"
	case ShapeStar:
		return "M12 2l2.4 7.2h7.6l-6 4.8 2.4 7.2-6-4.8-6 4.8 2.4-7.2-6-4.8h7.6z"
	case ShapeTriangle:
		return "M12 4L4 20h16L12 4z"
	case ShapeSquiggle:
		return "M4,12 C8,2 16,22 20,12"
	case ShapeCircle:
		return "M12 2C6.48 2 2 6.48 2 12s4.48 10 10 10 10-4.48 10-10S17.52 2 12 2z"
	}
	return ""
}

// Particle describes one animated shape. Positions are percentages of the
// viewport, times are seconds.
type Particle struct {
	ID       int        `json:"id"`
	X        float64    `json:"x"`
	YStart   float64    `json:"y_start"`
	Color    string     `json:"color"`
	Size     float64    `json:"size"`
	Duration float64    `json:"duration"`
	Delay    float64    `json:"delay"`
	Shape    Shape      `json:"shape"`
	Rotation float64    `json:"rotation"`
	Sway     [4]float64 `json:"sway"`
}

// Count returns the batch size for an animation type
func Count(anim theme.AnimationType) int {
	switch anim {
	case theme.AnimationSnow:
		return 100
	case theme.AnimationConfetti:
		return 70
	case theme.AnimationSparkles:
		return 40
	}
	return 50
}

func baseDuration(anim theme.AnimationType) float64 {
	switch anim {
	case theme.AnimationSnow:
		return 10
	case theme.AnimationSparkles:
		return 3
	}
	return 3.5
}

func swayAmplitude(anim theme.AnimationType) float64 {
	switch anim {
	case theme.AnimationConfetti:
		return 15
	case theme.AnimationSnow:
		return 5
	}
	return 2
}

func shapeFor(rng *rand.Rand, anim theme.AnimationType) Shape {
	switch anim {
	case theme.AnimationHearts:
		return ShapeHeart
	case theme.AnimationSparkles:
		return ShapeStar
	case theme.AnimationConfetti:
		return confettiShapes[rng.IntN(len(confettiShapes))]
	}
	return ShapeCircle
}

// Generate builds a fresh particle batch for anim.
// palette must not be empty.
func Generate(rng *rand.Rand, anim theme.AnimationType, palette []string) []Particle {
	n := Count(anim)
	amp := swayAmplitude(anim)
	base := baseDuration(anim)

	batch := make([]Particle, n)
	for i := range batch {
		x := rng.Float64() * 100

		var y float64
		if anim == theme.AnimationSparkles {
			y = rng.Float64() * 100
		} else {
			y = -(rng.Float64()*20 + 10)
		}

		p := Particle{
			ID:       i,
			X:        x,
			YStart:   y,
			Color:    palette[rng.IntN(len(palette))],
			Size:     rng.Float64(),
			Duration: base + rng.Float64()*4,
			Delay:    rng.Float64() * 5,
			Shape:    shapeFor(rng, anim),
			Rotation: rng.Float64() * 360,
		}

		// every offset is taken from the start, not from the previous point
		p.Sway = [4]float64{
			x,
			x + (rng.Float64()*amp - amp/2),
			x - (rng.Float64()*amp - amp/2),
			x + (rng.Float64()*amp - amp/2),
		}
		batch[i] = p
	}
	return batch
}

// NewRand returns a PCG-backed source seeded with seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
