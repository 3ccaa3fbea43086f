package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port int `env:"ASCENSION_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ASCENSION_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "localhost:8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Locale != "pt-BR" {
		t.Errorf("locale = %q", cfg.Locale)
	}
	if cfg.TickInterval != 100*time.Millisecond {
		t.Errorf("tick interval = %s", cfg.TickInterval)
	}
	if cfg.StreamEvery != 10 {
		t.Errorf("stream every = %d", cfg.StreamEvery)
	}
	if cfg.Narration.Model != "gemini-3-flash-preview" {
		t.Errorf("model = %q", cfg.Narration.Model)
	}
	if cfg.Narration.Key() != "" {
		t.Errorf("expected no key, got %q", cfg.Narration.Key())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ASCENSION_ADDR", ":9000")
	t.Setenv("ASCENSION_LOCALE", "en-US")
	t.Setenv("ASCENSION_TICK_INTERVAL", "250ms")
	t.Setenv("GEMINI_API_KEY", "gemini")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.Locale != "en-US" || cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Narration.Key() != "gemini" {
		t.Errorf("key = %q", cfg.Narration.Key())
	}

	t.Setenv("API_KEY", "primary")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Narration.Key() != "primary" {
		t.Errorf("expected API_KEY to win, got %q", cfg.Narration.Key())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero tick", "ASCENSION_TICK_INTERVAL", "0s"},
		{"negative stream", "ASCENSION_STREAM_EVERY", "-1"},
		{"zero timeout", "ASCENSION_NARRATION_TIMEOUT", "0s"},
		{"bad duration", "ASCENSION_TICK_INTERVAL", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
