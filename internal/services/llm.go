// Package services provides the LLM narrator backends and the safe
// narrator wrapper the turn processor consumes.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwebster45206/realm-engine/pkg/chat"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

// LLMService is the interface every narrator backend implements.
type LLMService interface {
	// InitModel verifies the backend is usable on startup.
	InitModel(ctx context.Context, modelName string) error

	// GenerateTurn sends the prompt messages and returns the parsed
	// turn delta.
	GenerateTurn(ctx context.Context, messages []chat.Message) (*state.TurnDelta, error)
}

// parseTurnDelta decodes a model response into a TurnDelta, tolerating the
// code fences some models wrap around JSON output.
func parseTurnDelta(raw string) (*state.TurnDelta, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var delta state.TurnDelta
	if err := json.Unmarshal([]byte(cleaned), &delta); err != nil {
		return nil, fmt.Errorf("failed to parse turn delta: %w", err)
	}
	if delta.Narration == "" {
		return nil, fmt.Errorf("turn delta has no narration")
	}
	return &delta, nil
}

// joinMessages flattens chat messages into one prompt string for backends
// that take a single completion prompt rather than a message array.
func joinMessages(messages []chat.Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(msg.Content)
	}
	return sb.String()
}

// splitSystem separates system messages from the conversation for backends
// that pass system text out of band.
func splitSystem(messages []chat.Message) (string, []chat.Message) {
	var systemParts []string
	var rest []chat.Message
	for _, msg := range messages {
		if msg.Role == chat.RoleSystem {
			systemParts = append(systemParts, msg.Content)
		} else {
			rest = append(rest, msg)
		}
	}
	return strings.Join(systemParts, "\n\n"), rest
}
