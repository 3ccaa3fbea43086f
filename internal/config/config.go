// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime knob. The catalog itself is static.
type Config struct {
	Addr          string        `env:"ASCENSION_ADDR" envDefault:"localhost:8080"`
	Locale        string        `env:"ASCENSION_LOCALE" envDefault:"pt-BR"`
	CatalogPath   string        `env:"ASCENSION_CATALOG"`
	TickInterval  time.Duration `env:"ASCENSION_TICK_INTERVAL" envDefault:"100ms"`
	StreamEvery   int           `env:"ASCENSION_STREAM_EVERY" envDefault:"10"`
	AllowedOrigin string        `env:"ASCENSION_ALLOWED_ORIGIN"`

	Narration Narration
	Telemetry Telemetry
}

// Telemetry configures opt-in OpenTelemetry tracing
type Telemetry struct {
	Endpoint string `env:"ASCENSION_OTEL_ENDPOINT"`
	Enabled  bool   `env:"ASCENSION_OTEL_ENABLED" envDefault:"true"`
}

// Narration configures the generative narrator
type Narration struct {
	APIKey       string        `env:"API_KEY"`
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	Model        string        `env:"ASCENSION_NARRATION_MODEL" envDefault:"gemini-3-flash-preview"`
	BaseURL      string        `env:"ASCENSION_NARRATION_URL"`
	Timeout      time.Duration `env:"ASCENSION_NARRATION_TIMEOUT" envDefault:"10s"`
}

// Key returns the configured credential, preferring API_KEY
func (n Narration) Key() string {
	if n.APIKey != "" {
		return n.APIKey
	}
	return n.GeminiAPIKey
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates a Config
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.StreamEvery <= 0 {
		return fmt.Errorf("stream every must be positive, got %d", c.StreamEvery)
	}
	if c.Narration.Timeout <= 0 {
		return fmt.Errorf("narration timeout must be positive, got %s", c.Narration.Timeout)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
