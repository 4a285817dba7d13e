package prompts

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/realm-engine/pkg/chat"
	"github.com/jwebster45206/realm-engine/pkg/state"
	"github.com/jwebster45206/realm-engine/pkg/world"
)

// DefaultHistoryLimit is how many transcript entries ride along in the
// request payload. Truncation happens here, in the request builder; the
// authoritative log and history are never shortened.
const DefaultHistoryLimit = 10

// Builder constructs the narrator request messages using a fluent interface.
type Builder struct {
	gs           *state.GameState
	command      string
	historyLimit int
}

// New creates a prompt builder with default settings.
func New() *Builder {
	return &Builder{historyLimit: DefaultHistoryLimit}
}

// WithGameState sets the snapshot the request describes.
func (b *Builder) WithGameState(gs *state.GameState) *Builder {
	b.gs = gs
	return b
}

// WithCommand sets the player's command for this turn.
func (b *Builder) WithCommand(command string) *Builder {
	b.command = command
	return b
}

// WithHistoryLimit overrides the transcript window size.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// Build returns the message array for the narrator: the standing GM system
// instruction plus a user message carrying the JSON state payload.
func (b *Builder) Build() ([]chat.Message, error) {
	if b.gs == nil {
		return nil, fmt.Errorf("gamestate is required")
	}
	if b.command == "" {
		return nil, fmt.Errorf("player command is required")
	}

	payload, err := json.Marshal(b.requestPayload())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal turn request: %w", err)
	}

	return []chat.Message{
		chat.System(systemInstruction),
		chat.User("Game State: " + string(payload) +
			"\n\nSekarang, hasilkan respons JSON berdasarkan perintah pemain."),
	}, nil
}

// turnRequest is the JSON the narrator sees each turn: a trimmed view of the
// snapshot plus the local map ground truth and the player's command.
type turnRequest struct {
	PlayerState      playerView           `json:"playerState"`
	WorldState       worldView            `json:"worldState"`
	History          []state.HistoryEntry `json:"history"`
	Quests           []state.Quest        `json:"quests"`
	ActiveQuestOffer *state.QuestOffer    `json:"activeQuestOffer,omitempty"`
	PlayerCommand    string               `json:"playerCommand"`
}

type playerView struct {
	Name      string     `json:"name"`
	Level     int        `json:"level"`
	HP        int        `json:"hp"`
	MaxHP     int        `json:"maxHp"`
	MP        int        `json:"mp"`
	MaxMP     int        `json:"maxMp"`
	Stats     statsView  `json:"stats"`
	Gold      int        `json:"gold"`
	Inventory []itemView `json:"inventory"`
}

type statsView struct {
	Atk int `json:"atk"`
	Def int `json:"def"`
}

type itemView struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     state.ItemType `json:"type"`
	Equipped bool           `json:"equipped,omitempty"`
	Count    *int           `json:"count,omitempty"`
}

type worldView struct {
	Location  locationView   `json:"location"`
	TimeOfDay string         `json:"timeOfDay"`
	Enemies   []enemyView    `json:"activeEnemies"`
	LocalMap  world.LocalMap `json:"localMap"`
}

type locationView struct {
	Coords state.Coords   `json:"coords"`
	Tile   world.TileType `json:"type"`
}

type enemyView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	HP   int    `json:"hp"`
}

func (b *Builder) requestPayload() turnRequest {
	gs := b.gs
	coords := gs.World.Location.Coords

	items := make([]itemView, 0, len(gs.Player.Inventory))
	for _, item := range gs.Player.Inventory {
		items = append(items, itemView{
			ID:       item.ID,
			Name:     item.Name,
			Type:     item.Type,
			Equipped: item.Equipped,
			Count:    item.Count,
		})
	}

	enemies := make([]enemyView, 0, len(gs.World.ActiveEnemies))
	for _, enemy := range gs.World.ActiveEnemies {
		enemies = append(enemies, enemyView{ID: enemy.ID, Name: enemy.Name, HP: enemy.HP})
	}

	history := gs.History
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}

	return turnRequest{
		PlayerState: playerView{
			Name:      gs.Player.Name,
			Level:     gs.Player.Lvl,
			HP:        gs.Player.HP,
			MaxHP:     gs.Player.MaxHP,
			MP:        gs.Player.MP,
			MaxMP:     gs.Player.MaxMP,
			Stats:     statsView{Atk: gs.Player.Atk, Def: gs.Player.Def},
			Gold:      gs.Player.Gold,
			Inventory: items,
		},
		WorldState: worldView{
			Location:  locationView{Coords: coords, Tile: gs.World.Location.Tile},
			TimeOfDay: gs.World.TimeOfDay,
			Enemies:   enemies,
			LocalMap:  world.Neighborhood(coords.X, coords.Y),
		},
		History:          history,
		Quests:           gs.Quests,
		ActiveQuestOffer: gs.QuestOffer,
		PlayerCommand:    b.command,
	}
}
