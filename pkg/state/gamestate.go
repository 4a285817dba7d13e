package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/realm-engine/pkg/world"
)

// Player is the player character's sheet. Name is set once at creation and
// never changes afterwards.
type Player struct {
	Name      string `json:"name"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"maxHp"`
	MP        int    `json:"mp"`
	MaxMP     int    `json:"maxMp"`
	Atk       int    `json:"atk"`
	Def       int    `json:"def"`
	Lvl       int    `json:"lvl"`
	Exp       int    `json:"exp"`
	MaxExp    int    `json:"maxExp"`
	Gold      int    `json:"gold"`
	Inventory []Item `json:"inventory"`
}

// Coords are integer tile coordinates on the overworld. North is y-1.
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Location is where the player currently stands. Tile is derivable from the
// coordinates; Name is a narrative label the narrator may override.
type Location struct {
	Coords Coords         `json:"coords"`
	Tile   world.TileType `json:"type"`
	Name   string         `json:"name"`
}

// World is the state of the game world around the player. A non-empty enemy
// roster means combat is active.
type World struct {
	Location      Location `json:"location"`
	TimeOfDay     string   `json:"timeOfDay"`
	ActiveEnemies []Enemy  `json:"activeEnemies"`
}

// GameState is the single authoritative snapshot of a session. The storage
// layer owns it; the reconciler produces a new snapshot from the old one and
// never mutates its input.
type GameState struct {
	ID               uuid.UUID      `json:"id"`
	Player           Player         `json:"player"`
	World            World          `json:"world"`
	Quests           []Quest        `json:"quests"`
	QuestOffer       *QuestOffer    `json:"questOffer,omitempty"`
	History          []HistoryEntry `json:"history"`
	Log              []LogEntry     `json:"log"`
	SuggestedActions []string       `json:"suggestedActions"`
	IsLoading        bool           `json:"isLoading"`
	CreatedAt        time.Time      `json:"created_at,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at,omitempty"`
}

// Starting values for a fresh character.
const (
	startHP     = 100
	startMP     = 30
	startAtk    = 12
	startDef    = 5
	startGold   = 50
	startMaxExp = 100
)

// NewGameState creates a fresh session for a newly named character, standing
// in the starting village with the standard starting gear.
func NewGameState(playerName string) *GameState {
	rustyDur, rustyMax := 25, 30
	leatherDur, leatherMax := 40, 40
	potions := 3

	return &GameState{
		ID: uuid.New(),
		Player: Player{
			Name:   playerName,
			HP:     startHP,
			MaxHP:  startHP,
			MP:     startMP,
			MaxMP:  startMP,
			Atk:    startAtk,
			Def:    startDef,
			Lvl:    1,
			Exp:    0,
			MaxExp: startMaxExp,
			Gold:   startGold,
			Inventory: []Item{
				{
					ID: "rusty_sword", Name: "Pedang Berkarat", Icon: "⚔️",
					Type: ItemEquipment, Equipped: true, Slot: SlotWeapon,
					Stats: &ItemStats{Atk: 2}, Durability: &rustyDur, MaxDurability: &rustyMax,
				},
				{
					ID: "leather_armor", Name: "Zirah Kulit", Icon: "👕",
					Type: ItemEquipment, Equipped: true, Slot: SlotArmor,
					Stats: &ItemStats{Def: 2}, Durability: &leatherDur, MaxDurability: &leatherMax,
				},
				{
					ID: "health_potion", Name: "Potion Penyembuh", Icon: "🧪",
					Type: ItemConsumable, Count: &potions,
				},
			},
		},
		World: World{
			Location: Location{
				Coords: Coords{X: 0, Y: 0},
				Tile:   world.TileAt(0, 0),
				Name:   "Desa Oakvale",
			},
			TimeOfDay:     "Siang",
			ActiveEnemies: []Enemy{},
		},
		Quests:           []Quest{},
		History:          []HistoryEntry{},
		Log:              []LogEntry{},
		SuggestedActions: []string{},
		CreatedAt:        time.Now(),
	}
}

// InCombat reports whether any enemies are on the field.
func (gs *GameState) InCombat() bool {
	return len(gs.World.ActiveEnemies) > 0
}

// FindQuest returns the quest with the given ID, or nil.
func (gs *GameState) FindQuest(id string) *Quest {
	for i := range gs.Quests {
		if gs.Quests[i].ID == id {
			return &gs.Quests[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot.
func (gs *GameState) Clone() *GameState {
	out := *gs

	out.Player.Inventory = make([]Item, len(gs.Player.Inventory))
	for i, item := range gs.Player.Inventory {
		out.Player.Inventory[i] = item.Clone()
	}

	out.World.ActiveEnemies = append([]Enemy(nil), gs.World.ActiveEnemies...)
	out.Quests = append([]Quest(nil), gs.Quests...)
	out.History = append([]HistoryEntry(nil), gs.History...)
	out.Log = append([]LogEntry(nil), gs.Log...)
	out.SuggestedActions = append([]string(nil), gs.SuggestedActions...)

	if gs.QuestOffer != nil {
		offer := *gs.QuestOffer
		out.QuestOffer = &offer
	}
	return &out
}
