package main

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Conceptual-Machines/sendawish-api/internal/api"
	"github.com/Conceptual-Machines/sendawish-api/internal/audio"
	"github.com/Conceptual-Machines/sendawish-api/internal/config"
	"github.com/Conceptual-Machines/sendawish-api/internal/llm"
	"github.com/Conceptual-Machines/sendawish-api/internal/logger"
	"github.com/Conceptual-Machines/sendawish-api/internal/metrics"
	"github.com/Conceptual-Machines/sendawish-api/internal/observability"
	"github.com/Conceptual-Machines/sendawish-api/internal/particles"
	"github.com/Conceptual-Machines/sendawish-api/internal/prompt"
	"github.com/Conceptual-Machines/sendawish-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	shutdownTimeout       = 10 * time.Second
	readHeaderTimeout     = 10 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "sendawish-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment, cfg.CloudWatchEnabled)
	if err != nil {
		log.Fatal("Failed to create CloudWatch client:", err)
	}
	recorder := metrics.Multi{metrics.NewSentryMetrics(), cloudwatch}

	langfuse := observability.InitializeLangfuse(ctx, cfg)

	labels := cfg.Settings.Labels()
	builder, err := prompt.NewPromptBuilder(labels, cfg.Settings.Wish.MaxWords)
	if err != nil {
		log.Fatal("Failed to load prompts:", err)
	}

	providers := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	if !providers.Configured() {
		logger.LogToSentry(sentry.LevelWarning, "No LLM provider configured, wishes use fallback text", logger.Fields{
			"model": cfg.WishModel,
		})
		log.Println("⚠️  No LLM API key set (GEMINI_API_KEY / OPENAI_API_KEY), wishes will use fallback text")
	}

	wishes := services.NewWishService(providers, cfg.WishModel, builder, labels,
		services.WithProviderName(cfg.WishProvider),
		services.WithLangfuse(langfuse),
		services.WithMetrics(recorder),
	)
	sounds := audio.NewLibrary(cfg.AudioEnabled, recorder)

	router := api.SetupRouter(cfg, api.Dependencies{
		Wishes:    wishes,
		Providers: providers,
		Sounds:    sounds,
		Metrics:   recorder,
		Field:     particles.NewField(particles.NewRand(rand.Uint64())),
	}, GetVersion())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("🚀 Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Render every sound effect up front so the first toggle is instant
	g.Go(func() error {
		if !sounds.Enabled() {
			log.Println("🔇 Sound effects disabled (AUDIO_ENABLED=false)")
			return nil
		}
		if err := sounds.Preload(gctx); err != nil {
			logger.Warn("Sound preload failed", logger.Fields{"error": err.Error()})
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("🛑 Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sentry.CaptureException(err)
		log.Printf("Server stopped with error: %v", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	langfuse.Flush(flushCtx)
	cloudwatch.Wait()
	log.Println("👋 Server stopped")
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
