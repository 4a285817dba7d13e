package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/realm-engine/pkg/chat"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNarrator_PassesThroughDelta(t *testing.T) {
	mock := &MockLLMService{
		NextDelta: &state.TurnDelta{Narration: "Kamu melangkah ke utara."},
	}
	narrator := NewNarrator(mock, testLogger())
	gs := state.NewGameState("Orion")

	delta := narrator.RequestTurn(context.Background(), gs, "pergi ke utara")

	require.NotNil(t, delta)
	assert.Equal(t, "Kamu melangkah ke utara.", delta.Narration)
	assert.Equal(t, 1, mock.Calls)

	// The prompt must carry the system instruction and the command.
	require.Len(t, mock.LastMessages, 2)
	assert.Equal(t, chat.RoleSystem, mock.LastMessages[0].Role)
	assert.Contains(t, mock.LastMessages[1].Content, "pergi ke utara")
}

func TestNarrator_FallbackOnBackendError(t *testing.T) {
	mock := &MockLLMService{Err: errors.New("connection refused")}
	narrator := NewNarrator(mock, testLogger())
	gs := state.NewGameState("Orion")

	delta := narrator.RequestTurn(context.Background(), gs, "lihat")

	require.NotNil(t, delta)
	assert.True(t, delta.IsEmpty(), "fallback delta must make no state claims")
	assert.Equal(t, fallbackTransportNarration, delta.Narration)
}

func TestNarrator_FallbackOnRateLimit(t *testing.T) {
	mock := &MockLLMService{Err: errors.New("request failed with status 429")}
	narrator := NewNarrator(mock, testLogger())
	gs := state.NewGameState("Orion")

	delta := narrator.RequestTurn(context.Background(), gs, "lihat")
	assert.Equal(t, fallbackBusyNarration, delta.Narration)
}

func TestNarrator_FallbackReconcilesToNoOp(t *testing.T) {
	// End-to-end: a failed turn's delta must leave everything but the
	// transcript and loading flag untouched.
	mock := &MockLLMService{Err: errors.New("boom")}
	narrator := NewNarrator(mock, testLogger())
	gs := state.NewGameState("Orion")
	gs.IsLoading = true

	delta := narrator.RequestTurn(context.Background(), gs, "serang naga")
	next, notes := state.NewReconciler(gs, delta, testLogger()).Apply("serang naga")

	assert.Empty(t, notes)
	assert.Equal(t, gs.Player, next.Player)
	assert.Equal(t, gs.Quests, next.Quests)
	assert.False(t, next.IsLoading)
	assert.Len(t, next.History, 2)
}

func TestParseTurnDelta(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "plain json", raw: `{"narration": "Halo."}`},
		{name: "fenced json", raw: "```json\n{\"narration\": \"Halo.\"}\n```"},
		{name: "bare fence", raw: "```\n{\"narration\": \"Halo.\"}\n```"},
		{name: "not json", raw: "maaf, aku bingung", wantErr: true},
		{name: "missing narration", raw: `{"suggestedActions": ["x"]}`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			delta, err := parseTurnDelta(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Halo.", delta.Narration)
		})
	}
}
