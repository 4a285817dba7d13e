package state

import (
	"bytes"
	"encoding/json"
)

// TurnDelta is the narrator's structured suggestion for how the game state
// should change this turn. It is untrusted input: every field is optional,
// shapes are tolerated loosely, and the reconciler decides what actually
// applies. A delta with only a narration is a valid no-op turn, which is how
// transport failures are surfaced to the player.
type TurnDelta struct {
	Narration        string            `json:"narration"`
	LogEntries       []string          `json:"logEntries,omitempty"`
	PlayerUpdates    *PlayerUpdates    `json:"playerUpdates,omitempty"`
	InventoryUpdates *InventoryUpdates `json:"inventoryUpdates,omitempty"`
	EnemyUpdates     *EnemyUpdates     `json:"enemyUpdates,omitempty"`
	QuestOffer       *QuestOffer       `json:"questOffer,omitempty"`
	QuestUpdates     *QuestUpdates     `json:"questUpdates,omitempty"`
	SuggestedActions []string          `json:"suggestedActions,omitempty"`

	// Malformed lists field names that were present but undecodable.
	// The reconciler logs them; they are never an error.
	Malformed []string `json:"-"`
}

// PlayerUpdates carries absolute and relative player attribute changes.
type PlayerUpdates struct {
	Set       *PlayerSet       `json:"set,omitempty"`
	Increment *PlayerIncrement `json:"increment,omitempty"`
}

// PlayerSet is the closed set of absolute player writes the narrator may
// request. Coords and LocationName are redirected to the world location.
// Inventory is captured only so the attempt can be logged and refused;
// inventory changes must go through InventoryUpdates.
type PlayerSet struct {
	HP           *int            `json:"hp,omitempty"`
	MaxHP        *int            `json:"maxHp,omitempty"`
	MP           *int            `json:"mp,omitempty"`
	MaxMP        *int            `json:"maxMp,omitempty"`
	Exp          *int            `json:"exp,omitempty"`
	MaxExp       *int            `json:"maxExp,omitempty"`
	Lvl          *int            `json:"lvl,omitempty"`
	Gold         *int            `json:"gold,omitempty"`
	Atk          *int            `json:"atk,omitempty"`
	Def          *int            `json:"def,omitempty"`
	Coords       *Coords         `json:"coords,omitempty"`
	LocationName *string         `json:"locationName,omitempty"`
	Inventory    json.RawMessage `json:"inventory,omitempty"`
}

// PlayerIncrement is the closed set of relative player changes.
type PlayerIncrement struct {
	HP   *int `json:"hp,omitempty"`
	MP   *int `json:"mp,omitempty"`
	Exp  *int `json:"exp,omitempty"`
	Gold *int `json:"gold,omitempty"`
}

// InventoryUpdates carries the three inventory operations. Each accepts a
// bare object or an array on the wire.
type InventoryUpdates struct {
	Add    OneOrMany[Item]       `json:"add,omitempty"`
	Remove OneOrMany[string]     `json:"remove,omitempty"`
	Update OneOrMany[ItemUpdate] `json:"update,omitempty"`
}

// ItemUpdate is a partial change to one inventory entry, located by ID.
type ItemUpdate struct {
	ID      string    `json:"id"`
	Changes ItemPatch `json:"changes"`
}

// EnemyUpdates carries the three enemy roster operations.
type EnemyUpdates struct {
	Add    OneOrMany[Enemy]       `json:"add,omitempty"`
	Remove OneOrMany[string]      `json:"remove,omitempty"`
	Update OneOrMany[EnemyUpdate] `json:"update,omitempty"`
}

// EnemyUpdate is a partial change to one enemy. HP is the only mutable field.
type EnemyUpdate struct {
	ID      string `json:"id"`
	Changes struct {
		HP *int `json:"hp,omitempty"`
	} `json:"changes"`
}

// QuestUpdates carries quest log operations. Added quests arrive without a
// status; the reconciler forces them ACTIVE.
type QuestUpdates struct {
	Add    OneOrMany[QuestOffer]  `json:"add,omitempty"`
	Update OneOrMany[QuestUpdate] `json:"update,omitempty"`
}

// QuestUpdate is a partial change to one quest, located by ID.
type QuestUpdate struct {
	ID      string     `json:"id"`
	Changes QuestPatch `json:"changes"`
}

// IsEmpty reports whether the delta makes no state-mutating claims.
func (d *TurnDelta) IsEmpty() bool {
	return d == nil || (d.PlayerUpdates == nil &&
		d.InventoryUpdates == nil &&
		d.EnemyUpdates == nil &&
		d.QuestOffer == nil &&
		d.QuestUpdates == nil &&
		len(d.SuggestedActions) == 0)
}

// OneOrMany is a slice that tolerates a bare JSON object (or scalar) where
// an array is expected. Narrators frequently emit a single object for
// single-element operations; normalizing here keeps the merge logic simple.
type OneOrMany[T any] []T

func (m *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, (*[]T)(m))
	}
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*m = OneOrMany[T]{single}
	return nil
}

// UnmarshalJSON decodes each recognized field independently, so one
// malformed field degrades to a skip instead of rejecting the whole delta.
// Unrecognized fields are ignored.
func (d *TurnDelta) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decode := func(name string, dst any) {
		field, ok := raw[name]
		if !ok || bytes.Equal(bytes.TrimSpace(field), []byte("null")) {
			return
		}
		if err := json.Unmarshal(field, dst); err != nil {
			d.Malformed = append(d.Malformed, name)
		}
	}

	decode("narration", &d.Narration)
	decode("logEntries", &d.LogEntries)
	decode("playerUpdates", &d.PlayerUpdates)
	decode("inventoryUpdates", &d.InventoryUpdates)
	decode("enemyUpdates", &d.EnemyUpdates)
	decode("questOffer", &d.QuestOffer)
	decode("questUpdates", &d.QuestUpdates)
	decode("suggestedActions", &d.SuggestedActions)
	return nil
}
