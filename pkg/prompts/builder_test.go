package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/realm-engine/pkg/chat"
	"github.com/jwebster45206/realm-engine/pkg/state"
	"github.com/jwebster45206/realm-engine/pkg/world"
)

func TestBuilder_RequiresGameStateAndCommand(t *testing.T) {
	_, err := New().WithCommand("lihat").Build()
	assert.Error(t, err)

	_, err = New().WithGameState(state.NewGameState("Orion")).Build()
	assert.Error(t, err)
}

func TestBuilder_MessageShape(t *testing.T) {
	gs := state.NewGameState("Orion")
	messages, err := New().WithGameState(gs).WithCommand("pergi ke utara").Build()
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, chat.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "Game Master")

	assert.Equal(t, chat.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "pergi ke utara")
}

func TestBuilder_PayloadCarriesLocalMap(t *testing.T) {
	gs := state.NewGameState("Orion")
	messages, err := New().WithGameState(gs).WithCommand("lihat sekeliling").Build()
	require.NoError(t, err)

	payload := extractPayload(t, messages[1].Content)
	var req struct {
		WorldState struct {
			LocalMap world.LocalMap `json:"localMap"`
		} `json:"worldState"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	assert.Equal(t, world.TileAt(0, -1), req.WorldState.LocalMap.North)
	assert.Equal(t, world.TileAt(1, 1), req.WorldState.LocalMap.SouthEast)
}

func TestBuilder_HistoryWindow(t *testing.T) {
	gs := state.NewGameState("Orion")
	for i := 0; i < 30; i++ {
		gs.History = append(gs.History, state.HistoryEntry{
			Role:    state.HistoryRolePlayer,
			Content: fmt.Sprintf("perintah %d", i),
		})
	}

	messages, err := New().WithGameState(gs).WithCommand("lanjut").Build()
	require.NoError(t, err)

	payload := extractPayload(t, messages[1].Content)
	var req struct {
		History []state.HistoryEntry `json:"history"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	require.Len(t, req.History, DefaultHistoryLimit)
	assert.Equal(t, "perintah 29", req.History[len(req.History)-1].Content)

	// The authoritative history is untouched by windowing.
	assert.Len(t, gs.History, 30)
}

func TestBuilder_InventoryViewOmitsInternals(t *testing.T) {
	gs := state.NewGameState("Orion")
	messages, err := New().WithGameState(gs).WithCommand("periksa tas").Build()
	require.NoError(t, err)

	// Durability is engine-internal; the narrator only needs identity,
	// type, count, and equip state.
	payload := extractPayload(t, messages[1].Content)
	assert.NotContains(t, payload, "durability")
	assert.Contains(t, payload, "rusty_sword")
}

func extractPayload(t *testing.T, content string) string {
	t.Helper()
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	require.True(t, start >= 0 && end > start, "no JSON payload in message")
	return content[start : end+1]
}
