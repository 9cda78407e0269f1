package api

import (
	"io/fs"
	"net/http"

	"github.com/Conceptual-Machines/sendawish-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/sendawish-api/internal/api/middleware"
	"github.com/Conceptual-Machines/sendawish-api/internal/audio"
	"github.com/Conceptual-Machines/sendawish-api/internal/config"
	"github.com/Conceptual-Machines/sendawish-api/internal/metrics"
	"github.com/Conceptual-Machines/sendawish-api/internal/particles"
	"github.com/Conceptual-Machines/sendawish-api/internal/share"
	webhandlers "github.com/Conceptual-Machines/sendawish-api/internal/web/handlers"
	"github.com/Conceptual-Machines/sendawish-api/pkg/embedded"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the routes are served from
type Dependencies struct {
	Wishes    handlers.WishGenerator
	Providers handlers.ProviderStatus
	Sounds    *audio.Library
	Metrics   metrics.Recorder
	Field     *particles.Field
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.Metrics))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSOrigins))

	// Stylesheet and page scripts
	static, err := fs.Sub(embedded.Static, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(static))

	sounds := deps.Sounds
	if sounds == nil {
		sounds = audio.NewLibrary(false, nil)
	}
	labels := cfg.Settings.Labels()
	detector := share.NewDetector(cfg.Settings.PreviewHosts)

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.Providers, cfg.WishModel, sounds.Enabled())
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, sounds)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Web pages
	webHandler := webhandlers.NewWebHandler(deps.Wishes, labels, detector, cfg.PublicBaseURL)
	router.GET("/", webHandler.Home)
	router.POST("/wish", webHandler.CreateWish)
	router.GET("/wish", webHandler.Wish)

	// Public JSON API
	v1 := router.Group("/api/v1")
	{
		wishHandler := handlers.NewWishHandler(deps.Wishes, labels)
		v1.GET("/occasions", wishHandler.ListOccasions)
		v1.GET("/wish", wishHandler.GetWish)

		particlesHandler := handlers.NewParticlesHandler(deps.Field)
		v1.GET("/particles", particlesHandler.GetParticles)

		soundsHandler := handlers.NewSoundsHandler(sounds)
		v1.GET("/sounds", soundsHandler.ListSounds)
		v1.GET("/sounds/:effect", soundsHandler.GetSound)

		shareHandler := handlers.NewShareHandler(detector, cfg.PublicBaseURL)
		v1.POST("/share", shareHandler.Plan)
	}

	return router
}
