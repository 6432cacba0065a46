package model

import (
	"context"
	"fmt"

	"lingua-tutor/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// GeminiGateway implements domain.ModelGateway against Google's Gemini
// models through langchaingo.
type GeminiGateway struct {
	llm    llms.Model
	logger *zap.Logger
}

// NewGeminiGateway creates the gateway. The API key must be set; callers
// that can run without the model should check the key before constructing.
func NewGeminiGateway(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	logger.Info("Gemini gateway initialized", zap.String("model", modelName))
	return &GeminiGateway{llm: llm, logger: logger}, nil
}

// GenerateText sends a text-only prompt and returns the raw response text.
func (g *GeminiGateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}, llms.WithTemperature(0.2))
	if err != nil {
		return "", domain.NewProviderError(err)
	}
	return firstChoice(resp)
}

// GenerateFromImage sends a prompt plus an image payload and returns the
// raw response text.
func (g *GeminiGateway) GenerateFromImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, image),
				llms.TextPart(prompt),
			},
		},
	}, llms.WithTemperature(0.2))
	if err != nil {
		return "", domain.NewProviderError(err)
	}
	return firstChoice(resp)
}

func firstChoice(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", domain.NewBadUpstreamResponseError("model returned an empty response", nil)
	}
	return resp.Choices[0].Content, nil
}

var _ domain.ModelGateway = (*GeminiGateway)(nil)
