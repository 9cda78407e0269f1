package particles

import (
	"math/rand/v2"

	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
)

const fallEnd = 110 // vh, just below the viewport

// Motion is the keyframe description the wish page animates a particle with.
// Every particle loops forever with its own Duration and Delay. X holds
// absolute viewport columns placed on Times; every other track is spread
// evenly over the cycle.
type Motion struct {
	Y        []float64 `json:"y"`
	X        []float64 `json:"x,omitempty"`
	Rotate   []float64 `json:"rotate"`
	Opacity  []float64 `json:"opacity"`
	Scale    []float64 `json:"scale,omitempty"`
	Times    []float64 `json:"times"`
	Ease     string    `json:"ease"`
	Duration float64   `json:"duration"`
	Delay    float64   `json:"delay"`
	SizePx   float64   `json:"size_px"`
}

// Animated pairs a particle with its motion and drawing path
type Animated struct {
	Particle
	Path   string `json:"path,omitempty"`
	Motion Motion `json:"motion"`
}

// SizePx returns the rendered pixel size of p
func SizePx(p Particle, anim theme.AnimationType) float64 {
	switch {
	case p.Shape == ShapeSquare:
		return 8 + p.Size*10
	case anim == theme.AnimationSnow:
		return 10 + p.Size*10
	}
	return 20 + p.Size*12
}

// MotionFor maps a particle to its keyframes. rng picks the spin direction
// of falling particles.
func MotionFor(rng *rand.Rand, p Particle, anim theme.AnimationType) Motion {
	m := Motion{
		Duration: p.Duration,
		Delay:    p.Delay,
		SizePx:   SizePx(p, anim),
	}

	if anim == theme.AnimationSparkles {
		m.Y = []float64{p.YStart, p.YStart - 5, p.YStart}
		m.Rotate = []float64{p.Rotation, p.Rotation + 20, p.Rotation}
		m.Scale = []float64{0.5, 1.2, 0.5}
		m.Opacity = []float64{0, 1, 0.5, 1, 0}
		m.Times = []float64{0, 0.5, 1}
		m.Ease = "easeInOut"
		return m
	}

	sign := 1.0
	if rng.IntN(2) == 0 {
		sign = -1
	}
	turns := 5.0
	m.Ease = "easeInOut"
	if anim == theme.AnimationSnow {
		turns = 1
		m.Ease = "linear"
	}

	m.Y = []float64{p.YStart, fallEnd}
	m.X = p.Sway[:]
	m.Rotate = []float64{p.Rotation, p.Rotation + sign*360*turns}
	m.Times = []float64{0, 0.33, 0.66, 1}

	switch anim {
	case theme.AnimationBubbles:
		m.Opacity = []float64{0, 1, 0}
	case theme.AnimationSnow:
		m.Opacity = []float64{0, 0.8, 0.8, 0}
	default:
		m.Opacity = []float64{1}
	}
	return m
}

// Animate attaches motion and path to every particle of a batch
func Animate(rng *rand.Rand, batch []Particle, anim theme.AnimationType) []Animated {
	out := make([]Animated, len(batch))
	for i, p := range batch {
		out[i] = Animated{
			Particle: p,
			Path:     p.Shape.Path(),
			Motion:   MotionFor(rng, p, anim),
		}
	}
	return out
}
