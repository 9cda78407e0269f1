package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Conceptual-Machines/sendawish-api/internal/config"
	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticWishes struct{}

func (staticWishes) Generate(context.Context, models.WishSelection) services.Wish {
	return services.Wish{Text: "yay", Source: services.SourceAI}
}

func TestSetupRouterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	settings, err := config.LoadSettings("")
	require.NoError(t, err)
	cfg := &config.Config{
		WishModel:   "gemini-2.5-flash",
		CORSOrigins: []string{"*"},
		Settings:    settings,
	}

	router := SetupRouter(cfg, Dependencies{Wishes: staticWishes{}}, "test")

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/wish?to=Ben", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/occasions", http.StatusOK},
		{http.MethodGet, "/api/v1/wish?to=Ben", http.StatusOK},
		{http.MethodGet, "/api/v1/particles?seed=1", http.StatusOK},
		{http.MethodGet, "/api/v1/sounds", http.StatusOK},
		{http.MethodGet, "/api/v1/sounds/pop", http.StatusNoContent},
		{http.MethodGet, "/static/app.css", http.StatusOK},
		{http.MethodGet, "/static/wish.js", http.StatusOK},
		{http.MethodGet, "/static/emojis.js", http.StatusOK},
		{http.MethodGet, "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}
