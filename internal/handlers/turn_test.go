package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/internal/storage"
	"github.com/jwebster45206/realm-engine/internal/turn"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

func testTurnHandler(delta *state.TurnDelta) (*TurnHandler, *storage.MockStorage) {
	logger := testLogger()
	store := storage.NewMockStorage()
	narrator := services.NewNarrator(&services.MockLLMService{NextDelta: delta}, logger)
	processor := turn.NewProcessor(store, narrator, logger)
	return NewTurnHandler(processor, logger), store
}

func postTurn(t *testing.T, h *TurnHandler, req TurnRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/turn", bytes.NewReader(body)))
	return w
}

func TestTurnHandler(t *testing.T) {
	h, store := testTurnHandler(&state.TurnDelta{Narration: "Kabut tipis menyelimuti desa."})
	gs := state.NewGameState("Orion")
	require.NoError(t, store.SaveGameState(t.Context(), gs.ID, gs))

	w := postTurn(t, h, TurnRequest{GameID: gs.ID, Command: "Lihat sekeliling"})
	require.Equal(t, http.StatusOK, w.Code)

	var result turn.Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	require.NotNil(t, result.GameState)
	assert.False(t, result.GameState.IsLoading)
}

func TestTurnHandlerBusySession(t *testing.T) {
	h, store := testTurnHandler(&state.TurnDelta{Narration: "x"})
	gs := state.NewGameState("Orion")
	gs.IsLoading = true
	require.NoError(t, store.SaveGameState(t.Context(), gs.ID, gs))

	w := postTurn(t, h, TurnRequest{GameID: gs.ID, Command: "Serang"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTurnHandlerSessionNotFound(t *testing.T) {
	h, _ := testTurnHandler(&state.TurnDelta{Narration: "x"})

	w := postTurn(t, h, TurnRequest{GameID: uuid.New(), Command: "Halo"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTurnHandlerMissingCommand(t *testing.T) {
	h, _ := testTurnHandler(&state.TurnDelta{Narration: "x"})

	w := postTurn(t, h, TurnRequest{GameID: uuid.New()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTurnHandlerUnknownAction(t *testing.T) {
	h, _ := testTurnHandler(&state.TurnDelta{Narration: "x"})

	w := postTurn(t, h, TurnRequest{GameID: uuid.New(), Action: "dance"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTurnHandlerAcceptOffer(t *testing.T) {
	h, store := testTurnHandler(&state.TurnDelta{
		Narration: "Kepala desa menyerahkan peta tua.",
		QuestUpdates: &state.QuestUpdates{
			Add: state.OneOrMany[state.QuestOffer]{{ID: "wolf_hunt", Title: "Perburuan Serigala", Description: "Usir serigala."}},
		},
	})
	gs := state.NewGameState("Orion")
	gs.QuestOffer = &state.QuestOffer{ID: "wolf_hunt", Title: "Perburuan Serigala", Description: "Usir serigala."}
	require.NoError(t, store.SaveGameState(t.Context(), gs.ID, gs))

	w := postTurn(t, h, TurnRequest{GameID: gs.ID, Action: ActionAcceptOffer})
	require.Equal(t, http.StatusOK, w.Code)

	var result turn.Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Nil(t, result.GameState.QuestOffer)
	assert.NotNil(t, result.GameState.FindQuest("wolf_hunt"))
}

func TestTurnHandlerMethodNotAllowed(t *testing.T) {
	h, _ := testTurnHandler(&state.TurnDelta{Narration: "x"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/turn", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
