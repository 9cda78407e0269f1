package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/sendawish-api/internal/audio"
	"github.com/Conceptual-Machines/sendawish-api/internal/logger"
	"github.com/Conceptual-Machines/sendawish-api/internal/theme"
	"github.com/gin-gonic/gin"
)

// SoundLibrary hands out rendered effects
type SoundLibrary interface {
	Get(ctx context.Context, e audio.Effect) (*audio.Rendered, error)
}

type SoundsHandler struct {
	library SoundLibrary
}

func NewSoundsHandler(library SoundLibrary) *SoundsHandler {
	return &SoundsHandler{library: library}
}

// GetSound serves an effect as WAV. "theme" picks the effect for ?animation=.
// A disabled library answers 204 so the page stays silent.
func (h *SoundsHandler) GetSound(c *gin.Context) {
	name := c.Param(paramEffect)

	var effect audio.Effect
	if name == effectTheme {
		anim, ok := theme.ParseAnimation(c.Query(paramAnimation))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown animation: " + c.Query(paramAnimation)})
			return
		}
		effect = audio.ForAnimation(anim)
	} else {
		parsed, ok := audio.ParseEffect(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown effect: " + name})
			return
		}
		effect = parsed
	}

	rendered, err := h.library.Get(c.Request.Context(), effect)
	if errors.Is(err, audio.ErrAudioDisabled) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		fields := logger.WithContext(c)
		fields["effect"] = string(effect)
		logger.Error("Failed to render sound", err, fields)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render sound"})
		return
	}

	c.Header("Cache-Control", soundCacheControl)
	c.Header("X-Sound-Effect", string(rendered.Effect))
	c.Header("X-Sound-Duration-Ms", strconv.FormatInt(rendered.Duration.Milliseconds(), 10))
	c.Data(http.StatusOK, wavContentType, rendered.WAV)
}

// ListSounds returns the effect names and which effect each animation plays
func (h *SoundsHandler) ListSounds(c *gin.Context) {
	byAnimation := make(map[theme.AnimationType]audio.Effect, len(theme.Animations))
	for _, a := range theme.Animations {
		byAnimation[a] = audio.ForAnimation(a)
	}
	c.JSON(http.StatusOK, gin.H{
		"effects":      audio.Effects,
		"by_animation": byAnimation,
	})
}
