package item

import (
	"github.com/google/uuid"
)

// Item is a runtime instance of a Definition: the shared immutable
// description plus the mutable quantity and container location.
//
// Instances are identified by InstanceID, never by pointer and never by the
// definition ID. Clones and serialized copies keep their instance identity.
type Item struct {
	def        *Definition
	instanceID string
	quantity   int
	loc        Location
}

// New creates an instance of def holding qty units. The quantity is clamped
// into [0, MaxStack]; an instance clamped to zero is logically empty and
// should be discarded by the caller. Returns nil for a nil definition.
func New(def *Definition, qty int) *Item {
	if def == nil {
		return nil
	}
	it := &Item{
		def:        def,
		instanceID: uuid.NewString(),
		loc:        Unplaced(),
	}
	it.SetQuantity(qty)
	return it
}

// Definition returns the shared immutable definition.
func (it *Item) Definition() *Definition { return it.def }

// ID returns the definition identifier shared by all instances of the same
// definition.
func (it *Item) ID() string { return it.def.ID }

// InstanceID returns the unique runtime identifier of this instance.
func (it *Item) InstanceID() string { return it.instanceID }

// Same reports whether other is the same runtime instance, compared by
// instance ID.
func (it *Item) Same(other *Item) bool {
	return it != nil && other != nil && it.instanceID == other.instanceID
}

func (it *Item) Name() string   { return it.def.Name }
func (it *Item) Width() int     { return it.def.Width }
func (it *Item) Height() int    { return it.def.Height }
func (it *Item) MaxStack() int  { return it.def.MaxStack }
func (it *Item) Rarity() Rarity { return it.def.Rarity }

// EquipSlot returns the definition's equip-type tag, empty when the item is
// not equippable.
func (it *Item) EquipSlot() string { return it.def.EquipSlot }

// Stackable reports whether this item can merge with compatible stacks.
func (it *Item) Stackable() bool { return it.def.Stackable() }

// Quantity returns the current stack size, always within [0, MaxStack].
func (it *Item) Quantity() int { return it.quantity }

// SetQuantity clamps qty into [0, MaxStack] and stores it.
func (it *Item) SetQuantity(qty int) {
	if qty < 0 {
		qty = 0
	}
	if qty > it.def.MaxStack {
		qty = it.def.MaxStack
	}
	it.quantity = qty
}

// FreeCapacity returns how many more units this stack can absorb.
func (it *Item) FreeCapacity() int {
	return it.def.MaxStack - it.quantity
}

// CanStackWith reports whether other can merge into this stack: both must be
// stackable instances of the same definition ID, and they must not be the
// same instance.
func (it *Item) CanStackWith(other *Item) bool {
	if it == nil || other == nil || it.Same(other) {
		return false
	}
	return it.Stackable() && other.Stackable() && it.def.ID == other.def.ID
}

// Location returns the current container membership tag.
func (it *Item) Location() Location { return it.loc }

// SetLocation updates container membership. Only the container currently
// accepting or releasing the item may call this; gameplay code must go
// through container operations instead.
func (it *Item) SetLocation(loc Location) { it.loc = loc }

// Stat returns a named definition stat, zero when absent.
func (it *Item) Stat(name string) float64 { return it.def.Stats[name] }

// Split carves qty units off this stack into a new instance sharing the same
// definition. The source keeps the remainder. Returns nil when qty is not in
// (0, Quantity).
func (it *Item) Split(qty int) *Item {
	if qty <= 0 || qty >= it.quantity {
		return nil
	}
	it.quantity -= qty
	return &Item{
		def:        it.def,
		instanceID: uuid.NewString(),
		quantity:   qty,
		loc:        Unplaced(),
	}
}

// Use fires the OnUse hook and, for consumable definitions, removes one unit
// from the stack. Returns false when the definition has no use effect. The
// caller is responsible for discarding an instance whose quantity reaches
// zero.
func (it *Item) Use(ctx *EffectContext) bool {
	if it.def.Effects.OnUse == nil || it.quantity == 0 {
		return false
	}
	if ctx == nil {
		ctx = &EffectContext{}
	}
	ctx.Item = it
	it.def.Effects.FireUse(ctx)
	if it.def.Consumable {
		it.quantity--
	}
	return true
}

// Clone returns a snapshot copy of the instance: same definition reference,
// same instance ID, same quantity and location.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	cp := *it
	return &cp
}
