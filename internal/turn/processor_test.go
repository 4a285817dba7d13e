package turn

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/internal/storage"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

func testProcessor(mock *services.MockLLMService) (*Processor, *storage.MockStorage) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMockStorage()
	narrator := services.NewNarrator(mock, logger)
	return NewProcessor(store, narrator, logger), store
}

func seedSession(t *testing.T, store *storage.MockStorage) *state.GameState {
	t.Helper()
	gs := state.NewGameState("Orion")
	require.NoError(t, store.SaveGameState(context.Background(), gs.ID, gs))
	return gs
}

func intPtr(i int) *int { return &i }

func TestProcessTurn(t *testing.T) {
	mock := &services.MockLLMService{
		NextDelta: &state.TurnDelta{
			Narration:     "Angin dingin bertiup dari utara.",
			PlayerUpdates: &state.PlayerUpdates{Increment: &state.PlayerIncrement{Gold: intPtr(10)}},
		},
	}
	p, store := testProcessor(mock)
	gs := seedSession(t, store)

	result, err := p.ProcessTurn(context.Background(), gs.ID, "Lihat sekeliling")
	require.NoError(t, err)
	require.NotNil(t, result.GameState)

	assert.Equal(t, gs.Player.Gold+10, result.GameState.Player.Gold)
	assert.False(t, result.GameState.IsLoading)
	assert.Equal(t, 1, mock.Calls)

	// The committed snapshot matches the returned one.
	stored, err := store.LoadGameState(context.Background(), gs.ID)
	require.NoError(t, err)
	assert.Equal(t, result.GameState.Player.Gold, stored.Player.Gold)
	assert.False(t, stored.IsLoading)
}

func TestProcessTurnSessionNotFound(t *testing.T) {
	p, _ := testProcessor(&services.MockLLMService{NextDelta: &state.TurnDelta{Narration: "x"}})

	_, err := p.ProcessTurn(context.Background(), uuid.New(), "Halo")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestProcessTurnRejectsWhileBusy(t *testing.T) {
	p, store := testProcessor(&services.MockLLMService{NextDelta: &state.TurnDelta{Narration: "x"}})
	gs := seedSession(t, store)

	busy := gs.Clone()
	busy.IsLoading = true
	require.NoError(t, store.SaveGameState(context.Background(), gs.ID, busy))

	_, err := p.ProcessTurn(context.Background(), gs.ID, "Serang")
	assert.ErrorIs(t, err, ErrTurnInFlight)
}

func TestProcessTurnLevelUps(t *testing.T) {
	mock := &services.MockLLMService{
		NextDelta: &state.TurnDelta{
			Narration:     "Goblin itu tumbang.",
			PlayerUpdates: &state.PlayerUpdates{Increment: &state.PlayerIncrement{Exp: intPtr(120)}},
		},
	}
	p, store := testProcessor(mock)
	gs := seedSession(t, store)

	result, err := p.ProcessTurn(context.Background(), gs.ID, "Serang goblin")
	require.NoError(t, err)

	assert.Equal(t, 1, result.LevelsGained)
	assert.Equal(t, 2, result.GameState.Player.Lvl)
	assert.Equal(t, 20, result.GameState.Player.Exp)
}

func TestProcessTurnNarratorFailure(t *testing.T) {
	mock := &services.MockLLMService{Err: errors.New("backend unavailable")}
	p, store := testProcessor(mock)
	gs := seedSession(t, store)

	result, err := p.ProcessTurn(context.Background(), gs.ID, "Lompat")
	require.NoError(t, err)

	// Fallback narration keeps the turn alive without touching state.
	assert.Equal(t, gs.Player.Gold, result.GameState.Player.Gold)
	assert.False(t, result.GameState.IsLoading)
	assert.NotEmpty(t, result.GameState.Log)
}

func TestAcceptQuestOffer(t *testing.T) {
	mock := &services.MockLLMService{
		NextDelta: &state.TurnDelta{
			Narration: "Kepala desa tersenyum lega.",
			QuestUpdates: &state.QuestUpdates{
				Add: state.OneOrMany[state.QuestOffer]{{ID: "wolf_hunt", Title: "Perburuan Serigala", Description: "Usir serigala dari ladang."}},
			},
		},
	}
	p, store := testProcessor(mock)
	gs := state.NewGameState("Orion")
	gs.QuestOffer = &state.QuestOffer{ID: "wolf_hunt", Title: "Perburuan Serigala", Description: "Usir serigala dari ladang."}
	require.NoError(t, store.SaveGameState(context.Background(), gs.ID, gs))

	result, err := p.AcceptQuestOffer(context.Background(), gs.ID)
	require.NoError(t, err)

	assert.Nil(t, result.GameState.QuestOffer)
	require.NotNil(t, result.GameState.FindQuest("wolf_hunt"))
	require.NotEmpty(t, mock.LastMessages)
	assert.Contains(t, mock.LastMessages[len(mock.LastMessages)-1].Content, "Terima quest 'wolf_hunt'")
}

func TestRejectQuestOffer(t *testing.T) {
	mock := &services.MockLLMService{NextDelta: &state.TurnDelta{Narration: "Kepala desa mengangguk kecewa."}}
	p, store := testProcessor(mock)
	gs := state.NewGameState("Orion")
	gs.QuestOffer = &state.QuestOffer{ID: "wolf_hunt", Title: "Perburuan Serigala", Description: "Usir serigala dari ladang."}
	require.NoError(t, store.SaveGameState(context.Background(), gs.ID, gs))

	result, err := p.RejectQuestOffer(context.Background(), gs.ID)
	require.NoError(t, err)

	assert.Nil(t, result.GameState.QuestOffer)
	assert.Empty(t, result.GameState.Quests)
	require.NotEmpty(t, mock.LastMessages)
	assert.Contains(t, mock.LastMessages[len(mock.LastMessages)-1].Content, "Tolak quest 'wolf_hunt'")
}

func TestResolveQuestOfferWithoutOffer(t *testing.T) {
	p, store := testProcessor(&services.MockLLMService{NextDelta: &state.TurnDelta{Narration: "x"}})
	gs := seedSession(t, store)

	_, err := p.AcceptQuestOffer(context.Background(), gs.ID)
	assert.Error(t, err)
}
