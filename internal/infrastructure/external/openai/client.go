package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/johnquangdev/fireflies-agent/errors"
	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

const systemPrompt = "You extract structured follow-up actions from meeting transcripts."

// Client is a LanguageModelProvider backed by OpenAI chat completions
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates an OpenAI client. A non-empty BaseURL in the config
// redirects calls, which also serves compatible endpoints.
func NewClient(cfg *config.OpenAIConfig) *Client {
	model := openai.GPT4oMini
	if cfg.Model != "" {
		model = cfg.Model
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Complete sends the prompt and returns the raw assistant text. The
// response is passed through untouched; validation happens downstream.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.ErrProviderFailed("openai", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.ErrProviderFailed("openai", fmt.Errorf("empty response from openai"))
	}

	return resp.Choices[0].Message.Content, nil
}
