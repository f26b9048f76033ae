package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient runs the analysis on a self-hosted Ollama model.
type OllamaClient struct {
	llm *ollama.LLM
}

func NewOllamaClient(serverURL, model string) (*OllamaClient, error) {
	l, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("failed to init ollama: %w", err)
	}
	return &OllamaClient{llm: l}, nil
}

func (o *OllamaClient) Provider() string {
	return ProviderOllama
}

func (o *OllamaClient) AnalyzeContent(ctx context.Context, text string) (string, error) {
	res, err := llms.GenerateFromSinglePrompt(ctx, o.llm, BuildPrompt(text), llms.WithJSONMode())
	if err != nil {
		return "", fmt.Errorf("ollama completion: %w", err)
	}
	return strings.TrimSpace(res), nil
}
