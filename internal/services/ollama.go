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

const DefaultOllamaModel = "llama3"

// OllamaService implements LLMService against a self-hosted Ollama server.
type OllamaService struct {
	baseURL    string
	modelName  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOllamaService creates an Ollama narrator backend.
func NewOllamaService(baseURL string, modelName string, logger *slog.Logger) *OllamaService {
	if modelName == "" {
		modelName = DefaultOllamaModel
	}
	return &OllamaService{
		baseURL:   baseURL,
		modelName: modelName,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// InitModel checks the server is reachable and the model is present.
func (s *OllamaService) InitModel(ctx context.Context, modelName string) error {
	if modelName != "" {
		s.modelName = modelName
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama server not reachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama server returned status %d", resp.StatusCode)
	}
	s.logger.Info("Ollama server ready", "model", s.modelName)
	return nil
}

// GenerateTurn flattens the messages into one prompt and asks Ollama for a
// JSON completion.
func (s *OllamaService) GenerateTurn(ctx context.Context, messages []chat.Message) (*state.TurnDelta, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  s.modelName,
		Prompt: joinMessages(messages),
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var generated ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return nil, fmt.Errorf("failed to decode ollama response: %w", err)
	}
	if generated.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", generated.Error)
	}
	if generated.Response == "" {
		return nil, fmt.Errorf("ollama returned an empty response")
	}

	return parseTurnDelta(generated.Response)
}
