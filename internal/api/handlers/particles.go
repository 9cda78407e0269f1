package handlers

import (
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/particles"
	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
	"github.com/gin-gonic/gin"
)

// ParticlesHandler serves particle batches with their motion keyframes.
// Without a seed, requests share one field per server, so a batch stays the
// same until a different animation or palette is asked for.
type ParticlesHandler struct {
	field *particles.Field
}

func NewParticlesHandler(field *particles.Field) *ParticlesHandler {
	if field == nil {
		field = particles.NewField(particles.NewRand(rand.Uint64()))
	}
	return &ParticlesHandler{field: field}
}

type ParticlesResponse struct {
	Animation theme.AnimationType       `json:"animation"`
	Palette   []string                  `json:"palette"`
	Seed      *uint64                   `json:"seed,omitempty"`
	Count     int                       `json:"count"`
	Fresh     bool                      `json:"fresh"`
	Particles []particles.Animated      `json:"particles"`
	Emojis    []particles.FloatingEmoji `json:"emojis,omitempty"`
}

// GetParticles handles GET /api/v1/particles?animation=&palette=&seed=.
// palette is either an occasion id or a comma separated list of colors.
func (h *ParticlesHandler) GetParticles(c *gin.Context) {
	palette, occasionTheme, err := parsePalette(c.Query(paramPalette))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	anim := occasionTheme.Animation
	if raw := c.Query(paramAnimation); raw != "" {
		parsed, ok := theme.ParseAnimation(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown animation: " + raw})
			return
		}
		anim = parsed
	}
	if anim == "" {
		anim = theme.AnimationConfetti
	}

	resp := ParticlesResponse{Animation: anim, Palette: palette}

	if raw := c.Query(paramSeed); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an unsigned integer"})
			return
		}
		rng := particles.NewRand(seed)
		batch := particles.Generate(rng, anim, palette)
		resp.Seed = &seed
		resp.Fresh = true
		resp.Particles = particles.Animate(rng, batch, anim)
		resp.Emojis = particles.FloatingEmojis(rng, occasionTheme.Emojis)
	} else {
		batch, fresh := h.field.Particles(anim, palette)
		motionRng := particles.NewRand(rand.Uint64())
		resp.Fresh = fresh
		resp.Particles = particles.Animate(motionRng, batch, anim)
		resp.Emojis = particles.FloatingEmojis(motionRng, occasionTheme.Emojis)
	}
	resp.Count = len(resp.Particles)

	c.JSON(http.StatusOK, resp)
}

type paletteError string

func (e paletteError) Error() string { return string(e) }

// parsePalette resolves the palette parameter. Occasion palettes come from
// the theme table so repeated requests hand the field the same slice.
func parsePalette(raw string) ([]string, theme.Theme, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t := theme.For(models.OccasionOther)
		return t.ParticleColors, t, nil
	}
	if o := models.Occasion(strings.ToUpper(raw)); o.Valid() {
		t := theme.For(o)
		return t.ParticleColors, t, nil
	}

	var colors []string
	for _, part := range strings.Split(raw, paletteSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			colors = append(colors, part)
		}
	}
	if len(colors) == 0 {
		return nil, theme.Theme{}, paletteError("palette is empty")
	}
	if len(colors) > maxPaletteColors {
		return nil, theme.Theme{}, paletteError("palette has too many colors")
	}
	return colors, theme.Theme{}, nil
}
