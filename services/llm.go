package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"closetapi/stylist"

	"google.golang.org/genai"
)

const googleProvider = "gemini"

// GarmentTags are the labels the model reads off a garment photo.
type GarmentTags struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Color    string `json:"color"`
	Style    string `json:"style"`
	Material string `json:"material"`
	Season   string `json:"season"`
}

type GarmentTaggerProvider interface {
	TagGarment(ctx context.Context, image []byte, mimeType string) (*GarmentTags, error)
}

type GoogleLLMClient struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func NewGoogleLLMClient(ctx context.Context, apiKey, model string, maxTokens int) (*GoogleLLMClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &GoogleLLMClient{client: client, model: model, maxTokens: int32(maxTokens)}, nil
}

func (g *GoogleLLMClient) Send(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: g.maxTokens,
		Temperature:     genai.Ptr[float32](0.7),
	})
	if err != nil {
		return "", stylist.NewServiceError(googleProvider, err)
	}
	text, err := candidateText(result)
	if err != nil {
		return "", stylist.NewServiceError(googleProvider, err)
	}
	return text, nil
}

const tagPrompt = `Look at the garment in the image and label it.
Answer with one JSON object only:
{"category": "top|bottom|outer|shoes", "type": "...", "color": "...", "style": "...", "material": "cotton|knit|denim|polyester|linen|padded|suede|leather|...", "season": "spring|summer|fall|winter|all-season"}
Use short lowercase English words. Use "unknown" when a label cannot be seen.`

func (g *GoogleLLMClient) TagGarment(ctx context.Context, image []byte, mimeType string) (*GarmentTags, error) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
		{Text: tagPrompt},
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		MaxOutputTokens:  g.maxTokens,
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, stylist.NewServiceError(googleProvider, err)
	}
	text, err := candidateText(result)
	if err != nil {
		return nil, stylist.NewServiceError(googleProvider, err)
	}
	return parseTags(text)
}

// candidateText joins the visible text parts of the first candidate. Thought
// parts are skipped.
func candidateText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", errors.New("empty response")
	}
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s %s", fb.BlockReason, fb.BlockReasonMessage)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("response has no candidates")
	}
	candidate := result.Candidates[0]
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("response has no text, finish reason %s", candidate.FinishReason)
	}
	return b.String(), nil
}

func parseTags(raw string) (*GarmentTags, error) {
	object, ok := stylist.ExtractJSONObject(raw)
	if !ok {
		return nil, &stylist.ParseError{Reason: "no JSON object in tag reply", Raw: raw}
	}
	var tags GarmentTags
	if err := json.Unmarshal([]byte(object), &tags); err != nil {
		return nil, &stylist.ParseError{Reason: err.Error(), Raw: raw, Err: err}
	}
	return &tags, nil
}
