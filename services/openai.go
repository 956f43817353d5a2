package services

import (
	"context"
	"errors"
	"strings"

	"closetapi/stylist"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIProvider = "openai"

// OpenAIClient talks to any chat-completions compatible endpoint.
type OpenAIClient struct {
	client    openai.Client
	model     string
	maxTokens int64
}

func NewOpenAIClient(key, baseURL, model string, maxTokens int) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

func (c *OpenAIClient) Send(ctx context.Context, prompt string) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(c.maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", stylist.NewServiceError(openAIProvider, err)
	}
	text, err := choiceText(response)
	if err != nil {
		return "", stylist.NewServiceError(openAIProvider, err)
	}
	return text, nil
}

func choiceText(response *openai.ChatCompletion) (string, error) {
	if response == nil || len(response.Choices) == 0 {
		return "", errors.New("response has no choices")
	}
	var b strings.Builder
	for _, choice := range response.Choices {
		b.WriteString(choice.Message.Content)
	}
	if b.Len() == 0 {
		return "", errors.New("response has no text")
	}
	return b.String(), nil
}
