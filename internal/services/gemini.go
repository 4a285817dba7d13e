package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jwebster45206/realm-engine/pkg/chat"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

const (
	DefaultGeminiModel       = "gemini-2.5-flash"
	DefaultGeminiTemperature = 0.75
)

// GeminiService implements LLMService using the Google generative AI SDK.
type GeminiService struct {
	client    *genai.Client
	modelName string
	logger    *slog.Logger
}

// NewGeminiService creates a Gemini narrator backend.
func NewGeminiService(ctx context.Context, apiKey string, modelName string, logger *slog.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Close releases the underlying client.
func (s *GeminiService) Close() error {
	return s.client.Close()
}

// InitModel is a no-op for Gemini; the hosted model needs no warm-up.
func (s *GeminiService) InitModel(ctx context.Context, modelName string) error {
	if modelName != "" {
		s.modelName = modelName
	}
	return nil
}

// GenerateTurn sends the prompt and parses the JSON turn delta. System
// messages become the model's system instruction; JSON output is requested
// through the response MIME type.
func (s *GeminiService) GenerateTurn(ctx context.Context, messages []chat.Message) (*state.TurnDelta, error) {
	systemPrompt, conversation := splitSystem(messages)

	model := s.client.GenerativeModel(s.modelName)
	model.ResponseMIMEType = "application/json"
	temperature := float32(DefaultGeminiTemperature)
	model.Temperature = &temperature
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(joinMessages(conversation)))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected gemini response part type")
	}

	return parseTurnDelta(string(text))
}
