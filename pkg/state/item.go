package state

// ItemType classifies an inventory item. The set is closed: the reconciler
// treats anything outside it as narrator noise.
type ItemType string

const (
	ItemEquipment  ItemType = "EQUIPMENT"
	ItemConsumable ItemType = "CONSUMABLE"
	ItemMaterial   ItemType = "MATERIAL"
	ItemValuable   ItemType = "VALUABLE"
	ItemKey        ItemType = "KEY"
)

// EquipmentSlot is the body slot a piece of equipment occupies.
type EquipmentSlot string

const (
	SlotWeapon EquipmentSlot = "WEAPON"
	SlotArmor  EquipmentSlot = "ARMOR"
	SlotHelmet EquipmentSlot = "HELMET"
)

// ItemStats are combat bonuses granted by equipment.
type ItemStats struct {
	Atk int `json:"atk,omitempty"`
	Def int `json:"def,omitempty"`
}

// Item is a single inventory entry. Non-equipment items of the same ID stack
// into one entry via Count; equipment never stacks, so two entries may share
// an ID only when both are equipment.
type Item struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon,omitempty"`
	Type          ItemType      `json:"type"`
	Count         *int          `json:"count,omitempty"` // nil means 1 for non-equipment
	Equipped      bool          `json:"equipped,omitempty"`
	Slot          EquipmentSlot `json:"slot,omitempty"`
	Stats         *ItemStats    `json:"stats,omitempty"`
	Durability    *int          `json:"durability,omitempty"`
	MaxDurability *int          `json:"maxDurability,omitempty"`
}

// CountOr returns the stack count, or def when no count is recorded.
func (i *Item) CountOr(def int) int {
	if i.Count == nil {
		return def
	}
	return *i.Count
}

// Stackable reports whether this entry participates in stacking.
func (i *Item) Stackable() bool {
	return i.Type != ItemEquipment
}

// ClampDurability forces durability into [0, maxDurability]. A no-op unless
// both values are present.
func (i *Item) ClampDurability() {
	if i.Durability == nil || i.MaxDurability == nil {
		return
	}
	if *i.Durability > *i.MaxDurability {
		*i.Durability = *i.MaxDurability
	}
	if *i.Durability < 0 {
		*i.Durability = 0
	}
}

// ItemPatch is a partial set of item field changes from the narrator.
// Fields are applied by explicit dispatch; nothing else can be written.
type ItemPatch struct {
	Name          *string        `json:"name,omitempty"`
	Icon          *string        `json:"icon,omitempty"`
	Type          *ItemType      `json:"type,omitempty"`
	Count         *int           `json:"count,omitempty"`
	Equipped      *bool          `json:"equipped,omitempty"`
	Slot          *EquipmentSlot `json:"slot,omitempty"`
	Stats         *ItemStats     `json:"stats,omitempty"`
	Durability    *int           `json:"durability,omitempty"`
	MaxDurability *int           `json:"maxDurability,omitempty"`
}

// Apply merges the patch into the item, then re-clamps durability.
func (i *Item) Apply(p ItemPatch) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Icon != nil {
		i.Icon = *p.Icon
	}
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.Count != nil {
		c := *p.Count
		i.Count = &c
	}
	if p.Equipped != nil {
		i.Equipped = *p.Equipped
	}
	if p.Slot != nil {
		i.Slot = *p.Slot
	}
	if p.Stats != nil {
		s := *p.Stats
		i.Stats = &s
	}
	if p.Durability != nil {
		d := *p.Durability
		i.Durability = &d
	}
	if p.MaxDurability != nil {
		d := *p.MaxDurability
		i.MaxDurability = &d
	}
	i.ClampDurability()
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	out := i
	if i.Count != nil {
		c := *i.Count
		out.Count = &c
	}
	if i.Stats != nil {
		s := *i.Stats
		out.Stats = &s
	}
	if i.Durability != nil {
		d := *i.Durability
		out.Durability = &d
	}
	if i.MaxDurability != nil {
		d := *i.MaxDurability
		out.MaxDurability = &d
	}
	return out
}
