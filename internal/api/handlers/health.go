package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProviderStatus reports which LLM providers have credentials
type ProviderStatus interface {
	Status() map[string]bool
}

// HealthHandler reports liveness and what the service can currently do
type HealthHandler struct {
	providers    ProviderStatus
	model        string
	audioEnabled bool
}

func NewHealthHandler(providers ProviderStatus, model string, audioEnabled bool) *HealthHandler {
	return &HealthHandler{
		providers:    providers,
		model:        model,
		audioEnabled: audioEnabled,
	}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	providers := map[string]bool{}
	if h.providers != nil {
		providers = h.providers.Status()
	}

	wishStatus := "fallback"
	for _, ok := range providers {
		if ok {
			wishStatus = "ai"
			break
		}
	}

	audioStatus := "disabled"
	if h.audioEnabled {
		audioStatus = "enabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"wish": gin.H{
			"mode":      wishStatus,
			"model":     h.model,
			"providers": providers,
		},
		"audio": gin.H{
			"status": audioStatus,
		},
	})
}
