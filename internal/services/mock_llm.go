package services

import (
	"context"

	"github.com/jwebster45206/realm-engine/pkg/chat"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

// MockLLMService is a scriptable LLMService for tests.
type MockLLMService struct {
	// NextDelta is returned by GenerateTurn when Err is nil.
	NextDelta *state.TurnDelta

	// Err makes GenerateTurn fail.
	Err error

	// LastMessages records the most recent prompt for assertions.
	LastMessages []chat.Message

	// Calls counts GenerateTurn invocations.
	Calls int
}

var _ LLMService = (*MockLLMService)(nil)

func (m *MockLLMService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

func (m *MockLLMService) GenerateTurn(ctx context.Context, messages []chat.Message) (*state.TurnDelta, error) {
	m.Calls++
	m.LastMessages = messages
	if m.Err != nil {
		return nil, m.Err
	}
	if m.NextDelta != nil {
		return m.NextDelta, nil
	}
	return &state.TurnDelta{Narration: "..."}, nil
}
