package ai

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/baxromumarov/geode/internal/config"
	"github.com/baxromumarov/geode/internal/geode"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderMock   = "mock"
)

// Client produces a raw completion for the extracted page text. The
// completion is expected to be a JSON document shaped like geode.Response.
type Client interface {
	AnalyzeContent(ctx context.Context, text string) (string, error)
	Provider() string
}

// NewClient picks the model client once at startup.
//
// With AI_PROVIDER unset, OpenAI is used when OPENAI_API_KEY is present and
// the mock client otherwise. Providers that need a key fall back to the mock
// client when their key is missing.
func NewClient(cfg *config.Config) Client {
	provider := cfg.AIProvider

	if provider == "" {
		if cfg.OpenAIKey != "" {
			provider = ProviderOpenAI
		} else {
			provider = ProviderMock
		}
	}

	switch provider {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			slog.Warn("AI_PROVIDER=openai but OPENAI_API_KEY not set, falling back to mock")
			return NewMockClient()
		}
		slog.Info("using OpenAI client", "model", cfg.OpenAIModel)
		return NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL).WithModel(cfg.OpenAIModel)
	case ProviderGemini:
		if cfg.GeminiKey == "" {
			slog.Warn("AI_PROVIDER=gemini but GEMINI_API_KEY not set, falling back to mock")
			return NewMockClient()
		}
		slog.Info("using Gemini client", "model", cfg.GeminiModel)
		return NewGeminiClient(cfg.GeminiKey).WithModel(cfg.GeminiModel)
	case ProviderOllama:
		client, err := NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
		if err != nil {
			slog.Warn("failed to init ollama, falling back to mock", "error", err)
			return NewMockClient()
		}
		slog.Info("using Ollama client", "url", cfg.OllamaURL, "model", cfg.OllamaModel)
		return client
	case ProviderMock:
	default:
		slog.Warn("unknown AI_PROVIDER, falling back to mock", "provider", provider)
	}
	slog.Info("using mock AI client (set OPENAI_API_KEY for real analysis)")
	return NewMockClient()
}

// MockClient returns a fixed payload without any outbound call.
type MockClient struct {
	payload string
}

func NewMockClient() *MockClient {
	b, _ := json.Marshal(geode.MockPayload())
	return &MockClient{payload: string(b)}
}

func (m *MockClient) AnalyzeContent(ctx context.Context, text string) (string, error) {
	return m.payload, nil
}

func (m *MockClient) Provider() string {
	return ProviderMock
}
