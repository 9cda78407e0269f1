package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/sendawish-api/internal/models"
	"github.com/Conceptual-Machines/sendawish-api/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
// Note: This is a stateless service - no database or auth secrets needed
type Config struct {
	// Environment
	Environment string
	Port        string

	// Public address used when building share links behind a proxy
	PublicBaseURL string

	// LLM API Keys
	OpenAIAPIKey string // OpenAI API key for GPT models
	GeminiAPIKey string // Google Gemini API key

	// Wish generation
	WishModel    string // e.g. gemini-2.5-flash
	WishProvider string // optional explicit provider: "gemini" or "openai"

	// Sound effects rendered by the API
	AudioEnabled bool

	// Optional YAML settings overlay
	SettingsFile string
	Settings     Settings

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
	CloudWatchEnabled bool   // Publish custom metrics to CloudWatch (production only)

	// Comma separated list of allowed CORS origins, "*" for any
	CORSOrigins []string
}

// Settings are the tunables that live in YAML instead of the environment
type Settings struct {
	Wish           WishSettings      `yaml:"wish"`
	OccasionLabels map[string]string `yaml:"occasion_labels"`
	PreviewHosts   []string          `yaml:"preview_hosts"`
}

// WishSettings tune the generated text
type WishSettings struct {
	MaxWords int `yaml:"max_words"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		WishModel:         getEnv("WISH_MODEL", "gemini-2.5-flash"),
		WishProvider:      getEnv("WISH_PROVIDER", ""),
		AudioEnabled:      getEnvBool("AUDIO_ENABLED", true),
		SettingsFile:      getEnv("SETTINGS_FILE", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
		CloudWatchEnabled: getEnvBool("CLOUDWATCH_ENABLED", true),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
	}

	settings, err := LoadSettings(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings
	return cfg, nil
}

// LoadSettings parses the embedded defaults and merges path on top of them.
// An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(embedded.SettingsYAML, &s); err != nil {
		return Settings{}, fmt.Errorf("parse default settings: %w", err)
	}
	if path == "" {
		return s, s.validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file %s: %w", path, err)
	}

	var overlay Settings
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Settings{}, fmt.Errorf("parse settings file %s: %w", path, err)
	}

	if overlay.Wish.MaxWords > 0 {
		s.Wish.MaxWords = overlay.Wish.MaxWords
	}
	if len(overlay.OccasionLabels) > 0 {
		if s.OccasionLabels == nil {
			s.OccasionLabels = map[string]string{}
		}
		for k, v := range overlay.OccasionLabels {
			s.OccasionLabels[k] = v
		}
	}
	if overlay.PreviewHosts != nil {
		s.PreviewHosts = overlay.PreviewHosts
	}
	return s, s.validate()
}

func (s Settings) validate() error {
	for key := range s.OccasionLabels {
		if !models.Occasion(key).Valid() {
			return fmt.Errorf("occasion_labels: unknown occasion %q", key)
		}
	}
	return nil
}

// Labels returns the occasion label overrides
func (s Settings) Labels() models.Labels {
	labels := make(models.Labels, len(s.OccasionLabels))
	for k, v := range s.OccasionLabels {
		labels[models.Occasion(k)] = v
	}
	return labels
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
