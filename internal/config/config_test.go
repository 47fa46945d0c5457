package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %s", cfg.OpenAIModel)
	}
	if cfg.HistoryTTL != 24*time.Hour {
		t.Errorf("expected default history TTL 24h, got %s", cfg.HistoryTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("expected default CORS origins [*], got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HISTORY_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://www.example.com")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.OpenAIAPIKey != "sk-test" {
		t.Errorf("expected API key override, got %s", cfg.OpenAIAPIKey)
	}
	if cfg.HistoryTTL != time.Hour {
		t.Errorf("expected history TTL 1h, got %s", cfg.HistoryTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[1] != "https://www.example.com" {
		t.Errorf("expected origins trimmed, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	t.Setenv("HISTORY_TTL", "not-a-duration")

	cfg := Load()
	if cfg.HistoryTTL != 24*time.Hour {
		t.Errorf("expected fallback to default on invalid duration, got %s", cfg.HistoryTTL)
	}
}
