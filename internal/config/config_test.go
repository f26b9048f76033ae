package config

import (
	"log/slog"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "AI_PROVIDER", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"GEMINI_API_KEY", "GEMINI_MODEL", "OLLAMA_URL", "OLLAMA_MODEL", "MAX_TEXT_LENGTH",
		"FETCH_TIMEOUT", "USER_AGENT", "RESPECT_ROBOTS", "GEODE_API_URL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("unexpected port %q", cfg.Port)
	}
	if cfg.OpenAIKey != "" {
		t.Errorf("expected no credential, got %q", cfg.OpenAIKey)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("unexpected model %q", cfg.OpenAIModel)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("unexpected gemini model %q", cfg.GeminiModel)
	}
	if cfg.APIURL != "http://localhost:8080/api/run-geode" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.MaxTextLength != 3000 {
		t.Errorf("expected max text length 3000, got %d", cfg.MaxTextLength)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("unexpected fetch timeout %v", cfg.FetchTimeout)
	}
	if cfg.RespectRobots {
		t.Errorf("robots.txt should be ignored by default")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("unexpected log level %v", cfg.LogLevel)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AI_PROVIDER", " Gemini ")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("MAX_TEXT_LENGTH", "500")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("RESPECT_ROBOTS", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEODE_API_URL", "http://api.internal/api/run-geode")

	cfg := LoadConfig()
	if cfg.Port != "9090" {
		t.Errorf("unexpected port %q", cfg.Port)
	}
	if cfg.AIProvider != "gemini" {
		t.Errorf("provider should be normalized, got %q", cfg.AIProvider)
	}
	if cfg.OpenAIKey != "sk-test" {
		t.Errorf("credential not loaded")
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("unexpected gemini model %q", cfg.GeminiModel)
	}
	if cfg.MaxTextLength != 500 || cfg.FetchTimeout != 3*time.Second || !cfg.RespectRobots {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("unexpected log level %v", cfg.LogLevel)
	}
	if cfg.APIURL != "http://api.internal/api/run-geode" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_TEXT_LENGTH", "lots")
	t.Setenv("FETCH_TIMEOUT", "-1s")
	t.Setenv("RESPECT_ROBOTS", "maybe")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := LoadConfig()
	if cfg.MaxTextLength != 3000 {
		t.Errorf("expected default max text length, got %d", cfg.MaxTextLength)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.FetchTimeout)
	}
	if cfg.RespectRobots {
		t.Errorf("expected default robots setting")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected default log level, got %v", cfg.LogLevel)
	}
}
