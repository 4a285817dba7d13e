package state

import "strings"

// QuestStatus is the lifecycle state of an accepted quest. COMPLETED and
// FAILED are intended as terminal, but transitions are not enforced: the
// narrator may overwrite any status with any other. Tightening this would
// change observable behavior, so the permissiveness is kept deliberately.
type QuestStatus string

const (
	QuestActive    QuestStatus = "ACTIVE"
	QuestCompleted QuestStatus = "COMPLETED"
	QuestFailed    QuestStatus = "FAILED"
)

// Quest is an entry in the player's quest log. IDs are unique within the
// log; duplicate adds are ignored.
type Quest struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      QuestStatus `json:"status"`
}

// QuestOffer is a quest proposal shown to the player before acceptance.
// It is never part of the quest log; accepting it routes through the normal
// quest-add path, which forces status ACTIVE.
type QuestOffer struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Valid reports whether the offer is well-formed enough to show the player.
// The narrator occasionally emits offers with blank titles or descriptions;
// those are discarded rather than surfaced.
func (o *QuestOffer) Valid() bool {
	return o != nil &&
		o.ID != "" &&
		strings.TrimSpace(o.Title) != "" &&
		strings.TrimSpace(o.Description) != ""
}

// QuestPatch is a partial quest change from the narrator. Status is the only
// field whose change raises a player notification.
type QuestPatch struct {
	Status      *QuestStatus `json:"status,omitempty"`
	Description *string      `json:"description,omitempty"`
}
