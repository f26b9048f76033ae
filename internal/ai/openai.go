package ai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAIClient implements Client with the OpenAI chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a client; baseURL may point at any
// OpenAI-compatible host and is ignored when empty.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  defaultOpenAIModel,
	}
}

// WithModel allows changing the model (e.g., "gpt-4o")
func (o *OpenAIClient) WithModel(model string) *OpenAIClient {
	if model != "" {
		o.model = model
	}
	return o
}

func (o *OpenAIClient) Provider() string {
	return ProviderOpenAI
}

// AnalyzeContent sends one user message and returns the first choice's content.
func (o *OpenAIClient) AnalyzeContent(ctx context.Context, text string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(text)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
