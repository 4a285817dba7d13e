package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/realm-engine/pkg/chat"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

const (
	mistralBaseURL = "https://api.mistral.ai/v1"
	groqBaseURL    = "https://api.groq.com/openai/v1"

	DefaultMistralModel = "mistral-large-latest"
	DefaultGroqModel    = "llama-3.3-70b-versatile"

	defaultChatTemperature = 0.7
	defaultChatMaxTokens   = 2048
)

// openAICompatService implements LLMService against any provider speaking
// the OpenAI chat-completions dialect. Mistral and Groq both do.
type openAICompatService struct {
	provider   string
	baseURL    string
	apiKey     string
	modelName  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewMistralService creates a Mistral narrator backend.
func NewMistralService(apiKey string, modelName string, logger *slog.Logger) LLMService {
	if modelName == "" {
		modelName = DefaultMistralModel
	}
	return newOpenAICompatService("mistral", mistralBaseURL, apiKey, modelName, logger)
}

// NewGroqService creates a Groq narrator backend.
func NewGroqService(apiKey string, modelName string, logger *slog.Logger) LLMService {
	if modelName == "" {
		modelName = DefaultGroqModel
	}
	return newOpenAICompatService("groq", groqBaseURL, apiKey, modelName, logger)
}

func newOpenAICompatService(provider, baseURL, apiKey, modelName string, logger *slog.Logger) *openAICompatService {
	return &openAICompatService{
		provider:  provider,
		baseURL:   baseURL,
		apiKey:    apiKey,
		modelName: modelName,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chat.Message `json:"messages"`
	Temperature    float64        `json:"temperature,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// InitModel verifies an API key is configured.
func (s *openAICompatService) InitModel(ctx context.Context, modelName string) error {
	if s.apiKey == "" {
		return fmt.Errorf("%s API key is required", s.provider)
	}
	if modelName != "" {
		s.modelName = modelName
	}
	return nil
}

// GenerateTurn runs one chat completion in JSON mode and parses the delta.
func (s *openAICompatService) GenerateTurn(ctx context.Context, messages []chat.Message) (*state.TurnDelta, error) {
	reqPayload := chatCompletionRequest{
		Model:       s.modelName,
		Messages:    messages,
		Temperature: defaultChatTemperature,
		MaxTokens:   defaultChatMaxTokens,
		ResponseFormat: &struct {
			Type string `json:"type"`
		}{Type: "json_object"},
	}

	body, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", s.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", s.provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", s.provider, err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", s.provider, err)
	}
	if completion.Error != nil {
		return nil, fmt.Errorf("%s error: %s", s.provider, completion.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", s.provider, resp.StatusCode)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%s returned no choices", s.provider)
	}

	return parseTurnDelta(completion.Choices[0].Message.Content)
}
