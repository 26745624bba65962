package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Global singleton for callers that cannot take the config by injection.
var globalConfig *Config

// Config holds all environment backed configuration for chatterbot-server.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8000"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// Gemini provider
	GeminiAPIKey     string        `env:"GEMINI_API_KEY,notEmpty"`
	GeminiModel      string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiTitleModel string        `env:"GEMINI_TITLE_MODEL" envDefault:"gemini-2.5-flash"`
	ProviderTimeout  time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"60s"`

	// Conversation store
	ChatStorePath string `env:"CHAT_STORE_PATH" envDefault:"chat_history.json"`

	// Observability / Logging
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders  string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"chatterbot"`
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"console"`

	// Internal
	EnvReloadedAt time.Time
}

// Load reads an optional .env file, then parses environment variables into
// Config and performs minimal validation.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.ChatStorePath = strings.TrimSpace(cfg.ChatStorePath)
	if cfg.ChatStorePath == "" {
		return nil, errors.New("CHAT_STORE_PATH must not be blank")
	}

	if cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT must be positive, got %s", cfg.ProviderTimeout)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
