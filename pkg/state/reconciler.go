package state

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/realm-engine/pkg/world"
)

// Combat transition banners, emitted from roster cardinality alone so the
// log stays correct even when the narrator forgets to announce combat.
const (
	combatStartedBanner = "PERTEMPURAN DIMULAI!"
	combatEndedBanner   = "Pertempuran Berakhir!"
)

// NotificationKind is the display flavor of a toast-style notification.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is a transient player-facing event raised during
// reconciliation. It accompanies the new snapshot rather than living in it.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// Reconciler merges one narrator delta into a game state snapshot. The input
// snapshot is never mutated; Apply returns a new one. Malformed or
// inconsistent delta content is skipped with a warning, never an error: the
// reconciler must produce a valid next state from anything that parsed as a
// delta.
type Reconciler struct {
	gs     *GameState
	delta  *TurnDelta
	logger *slog.Logger

	next          *GameState
	notifications []Notification
}

// NewReconciler creates a reconciler for one turn.
func NewReconciler(gs *GameState, delta *TurnDelta, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		gs:     gs,
		delta:  delta,
		logger: logger,
	}
}

// Apply merges the delta into a copy of the snapshot and returns the new
// snapshot plus any notifications raised. The player command is recorded in
// the history and log before anything else, so even a completely malformed
// delta still yields a coherent transcript.
func (r *Reconciler) Apply(command string) (*GameState, []Notification) {
	r.next = r.gs.Clone()
	r.notifications = nil

	if r.delta == nil {
		r.delta = &TurnDelta{}
	}
	for _, field := range r.delta.Malformed {
		r.warn("Skipping malformed delta field", "field", field)
	}

	wasInCombat := r.next.InCombat()

	r.appendTranscript(command)
	r.applyQuestOffer()
	r.applyPlayerUpdates()
	r.applyInventoryUpdates()
	r.applyEnemyUpdates()
	r.applyQuestUpdates()

	// Combat transitions derive from roster cardinality across the merge.
	isInCombat := r.next.InCombat()
	if !wasInCombat && isInCombat {
		r.next.Log = append(r.next.Log, CombatEntry(combatStartedBanner))
	} else if wasInCombat && !isInCombat {
		r.next.Log = append(r.next.Log, CombatEntry(combatEndedBanner))
	}

	// The suggested actions list is replaced wholesale each turn.
	r.next.SuggestedActions = append([]string(nil), r.delta.SuggestedActions...)

	r.next.IsLoading = false
	return r.next, r.notifications
}

// appendTranscript records the player command and narrator prose in both the
// conversation history and the narrative log, plus any extra log lines the
// narrator supplied.
func (r *Reconciler) appendTranscript(command string) {
	r.next.History = append(r.next.History,
		HistoryEntry{Role: HistoryRolePlayer, Content: command},
		HistoryEntry{Role: HistoryRoleGM, Content: r.delta.Narration},
	)
	r.next.Log = append(r.next.Log,
		PlayerEntry(command),
		NarrationEntry(r.delta.Narration),
	)
	for _, entry := range r.delta.LogEntries {
		r.next.Log = append(r.next.Log, SystemEntry(entry))
	}
}

// applyQuestOffer replaces or clears the pending quest offer. A malformed
// offer clears any stale one rather than lingering.
func (r *Reconciler) applyQuestOffer() {
	offer := r.delta.QuestOffer
	if offer.Valid() {
		o := *offer
		r.next.QuestOffer = &o
		return
	}
	r.next.QuestOffer = nil
	if offer != nil {
		r.warn("Discarding invalid quest offer",
			"quest_id", offer.ID,
			"title", offer.Title)
	}
}

// applyPlayerUpdates applies absolute and relative attribute changes.
// Coordinate and location-name writes are redirected to the world location;
// direct inventory writes are refused.
func (r *Reconciler) applyPlayerUpdates() {
	updates := r.delta.PlayerUpdates
	if updates == nil {
		return
	}
	p := &r.next.Player

	if set := updates.Set; set != nil {
		if set.Inventory != nil {
			r.warn("Narrator attempted to overwrite inventory via playerUpdates.set; ignoring")
		}
		if set.HP != nil {
			p.HP = *set.HP
		}
		if set.MaxHP != nil {
			p.MaxHP = *set.MaxHP
		}
		if set.MP != nil {
			p.MP = *set.MP
		}
		if set.MaxMP != nil {
			p.MaxMP = *set.MaxMP
		}
		if set.Exp != nil {
			p.Exp = *set.Exp
		}
		if set.MaxExp != nil {
			p.MaxExp = *set.MaxExp
		}
		if set.Lvl != nil {
			p.Lvl = *set.Lvl
		}
		if set.Gold != nil {
			p.Gold = *set.Gold
		}
		if set.Atk != nil {
			p.Atk = *set.Atk
		}
		if set.Def != nil {
			p.Def = *set.Def
		}
		if set.Coords != nil {
			r.next.World.Location.Coords = *set.Coords
			r.next.World.Location.Tile = world.TileAt(set.Coords.X, set.Coords.Y)
		}
		if set.LocationName != nil {
			r.next.World.Location.Name = *set.LocationName
		}
	}

	if inc := updates.Increment; inc != nil {
		if inc.HP != nil {
			p.HP += *inc.HP
		}
		if inc.MP != nil {
			p.MP += *inc.MP
		}
		if inc.Exp != nil {
			p.Exp += *inc.Exp
		}
		if inc.Gold != nil {
			p.Gold += *inc.Gold
		}
	}
}

// applyInventoryUpdates runs the three inventory operations in add, remove,
// update order. Stacking, durability clamping, and zero-count removal keep
// the inventory consistent no matter what the narrator sends.
func (r *Reconciler) applyInventoryUpdates() {
	updates := r.delta.InventoryUpdates
	if updates == nil {
		return
	}

	for _, incoming := range updates.Add {
		r.addItem(incoming)
	}

	for _, id := range updates.Remove {
		r.removeItem(id)
	}

	for _, update := range updates.Update {
		r.updateItem(update)
	}
}

// addItem inserts an item or grows an existing stack. Equipment never
// stacks: an equipment add always inserts a new entry, even on ID collision.
func (r *Reconciler) addItem(incoming Item) {
	inv := r.next.Player.Inventory

	if incoming.Type != ItemEquipment {
		for i := range inv {
			if inv[i].ID == incoming.ID && inv[i].Stackable() {
				count := inv[i].CountOr(0) + incoming.CountOr(1)
				inv[i].Count = &count
				return
			}
		}
	}

	item := incoming.Clone()
	if item.Type != ItemEquipment && item.Count == nil {
		one := 1
		item.Count = &one
	}
	item.ClampDurability()
	r.next.Player.Inventory = append(inv, item)
}

// removeItem removes one unit of a stack, or the whole entry for equipment
// and single-count items.
func (r *Reconciler) removeItem(id string) {
	inv := r.next.Player.Inventory
	for i := range inv {
		if inv[i].ID != id {
			continue
		}
		if inv[i].Stackable() && inv[i].Count != nil && *inv[i].Count > 1 {
			count := *inv[i].Count - 1
			inv[i].Count = &count
		} else {
			r.next.Player.Inventory = append(inv[:i], inv[i+1:]...)
		}
		return
	}
	r.warn("Cannot remove unknown inventory item", "item_id", id)
}

// updateItem merges partial field changes into an existing entry. An update
// that drops the count to zero or below deletes every entry with that ID.
func (r *Reconciler) updateItem(update ItemUpdate) {
	inv := r.next.Player.Inventory
	for i := range inv {
		if inv[i].ID != update.ID {
			continue
		}
		inv[i].Apply(update.Changes)
		if inv[i].Count != nil && *inv[i].Count <= 0 {
			kept := inv[:0:0]
			for _, item := range inv {
				if item.ID != update.ID {
					kept = append(kept, item)
				}
			}
			r.next.Player.Inventory = kept
		}
		return
	}
	r.warn("Cannot update unknown inventory item", "item_id", update.ID)
}

// applyEnemyUpdates merges the enemy roster: defeats first, then arrivals,
// then HP changes.
func (r *Reconciler) applyEnemyUpdates() {
	updates := r.delta.EnemyUpdates
	if updates == nil {
		return
	}

	if len(updates.Remove) > 0 {
		removed := make(map[string]bool, len(updates.Remove))
		for _, id := range updates.Remove {
			removed[id] = true
		}
		kept := r.next.World.ActiveEnemies[:0:0]
		for _, enemy := range r.next.World.ActiveEnemies {
			if !removed[enemy.ID] {
				kept = append(kept, enemy)
			}
		}
		r.next.World.ActiveEnemies = kept
	}

	r.next.World.ActiveEnemies = append(r.next.World.ActiveEnemies, updates.Add...)

	for _, update := range updates.Update {
		applied := false
		for i := range r.next.World.ActiveEnemies {
			if r.next.World.ActiveEnemies[i].ID == update.ID {
				if update.Changes.HP != nil {
					r.next.World.ActiveEnemies[i].HP = *update.Changes.HP
				}
				applied = true
				break
			}
		}
		if !applied {
			r.warn("Cannot update unknown enemy", "enemy_id", update.ID)
		}
	}
}

// applyQuestUpdates adds quests (idempotent by ID, status forced ACTIVE) and
// applies status or description changes. Status transitions are deliberately
// unvalidated; see QuestStatus.
func (r *Reconciler) applyQuestUpdates() {
	updates := r.delta.QuestUpdates
	if updates == nil {
		return
	}

	for _, incoming := range updates.Add {
		if r.next.FindQuest(incoming.ID) != nil {
			continue
		}
		r.next.Quests = append(r.next.Quests, Quest{
			ID:          incoming.ID,
			Title:       incoming.Title,
			Description: incoming.Description,
			Status:      QuestActive,
		})
		r.notify(NotifyInfo, fmt.Sprintf("Quest Dimulai: %s", incoming.Title))
	}

	for _, update := range updates.Update {
		quest := r.next.FindQuest(update.ID)
		if quest == nil {
			r.warn("Cannot update unknown quest", "quest_id", update.ID)
			continue
		}
		if update.Changes.Description != nil {
			quest.Description = *update.Changes.Description
		}
		if update.Changes.Status != nil {
			quest.Status = *update.Changes.Status
			switch quest.Status {
			case QuestCompleted:
				r.notify(NotifySuccess, fmt.Sprintf("Quest Selesai: %s", quest.Title))
			case QuestFailed:
				r.notify(NotifyError, fmt.Sprintf("Quest Gagal: %s", quest.Title))
			}
		}
	}
}

func (r *Reconciler) notify(kind NotificationKind, message string) {
	r.notifications = append(r.notifications, Notification{Kind: kind, Message: message})
}

func (r *Reconciler) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
