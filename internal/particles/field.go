package particles

import (
	"math/rand/v2"
	"sync"

	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
)

// Field keeps the current particle batch of a page. The batch is replaced
// wholesale whenever the animation type or the palette slice changes;
// individual particles are never edited.
type Field struct {
	mu      sync.Mutex
	rng     *rand.Rand
	anim    theme.AnimationType
	palette []string
	batch   []Particle
}

// NewField creates an empty field drawing from rng
func NewField(rng *rand.Rand) *Field {
	return &Field{rng: rng}
}

// Particles returns the batch for anim and palette, regenerating it when
// either differs from the previous call. The second result reports whether a
// new batch was produced.
func (f *Field) Particles(anim theme.AnimationType, palette []string) ([]Particle, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.batch != nil && f.anim == anim && samePalette(f.palette, palette) {
		return f.batch, false
	}

	f.anim = anim
	f.palette = palette
	f.batch = Generate(f.rng, anim, palette)
	return f.batch, true
}

// samePalette compares slices by identity, not by content
func samePalette(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// FloatingEmoji is one emoji drifting up behind the page
type FloatingEmoji struct {
	Emoji    string  `json:"emoji"`
	X        float64 `json:"x"`
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
}

const floatingEmojiCount = 15

// FloatingEmojis cycles through emojis to build the background layer
func FloatingEmojis(rng *rand.Rand, emojis []string) []FloatingEmoji {
	if len(emojis) == 0 {
		return nil
	}
	out := make([]FloatingEmoji, floatingEmojiCount)
	for i := range out {
		out[i] = FloatingEmoji{
			Emoji:    emojis[i%len(emojis)],
			X:        rng.Float64() * 100,
			Duration: 10 + rng.Float64()*20,
			Delay:    rng.Float64() * 10,
		}
	}
	return out
}
