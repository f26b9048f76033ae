package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and handed to constructors.
type Config struct {
	Port string

	// AIProvider is "openai", "gemini", "ollama", "mock" or empty for auto-detect.
	AIProvider    string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	OllamaURL     string
	OllamaModel   string

	MaxTextLength int
	FetchTimeout  time.Duration
	UserAgent     string
	RespectRobots bool

	// APIURL is where the page posts analysis requests.
	APIURL string

	LogLevel slog.Level
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")

	return &Config{
		Port:          port,
		AIProvider:    strings.ToLower(strings.TrimSpace(getEnv("AI_PROVIDER", ""))),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OllamaURL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.2"),
		MaxTextLength: getEnvInt("MAX_TEXT_LENGTH", 3000),
		FetchTimeout:  getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		UserAgent:     getEnv("USER_AGENT", "geode-bot/1.0"),
		RespectRobots: getEnvBool("RESPECT_ROBOTS", false),
		APIURL:        getEnv("GEODE_API_URL", "http://localhost:"+port+"/api/run-geode"),
		LogLevel:      getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		slog.Warn("invalid log level in environment, using default", "key", key, "value", raw)
		return fallback
	}
	return level
}
