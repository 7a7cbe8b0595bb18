// Package equipment implements typed named slots for worn items.
//
// Each slot accepts a set of equip-type tags and holds at most one item.
// Like the inventory grid, an Equipment value is owned by a single logical
// actor and carries no locks; state changes are announced synchronously
// through the attached event bus.
package equipment

import (
	"fmt"

	"github.com/gridquest/gridquest/internal/core/events"
	"github.com/gridquest/gridquest/internal/core/events/bus"
	"github.com/gridquest/gridquest/internal/core/item"
	"github.com/gridquest/gridquest/internal/core/observability/log"
	"github.com/gridquest/gridquest/pkg/sequence"
)

// SlotConfig declares an equipment slot: a stable identifier, a display
// name, and the set of item equip-type tags the slot accepts.
type SlotConfig struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	AcceptedTypes []string `json:"accepted_types" yaml:"accepted_types"`
}

// Accepts reports whether the slot takes the given equip-type tag. An empty
// tag never matches.
func (c SlotConfig) Accepts(tag string) bool {
	if tag == "" {
		return false
	}
	for _, t := range c.AcceptedTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// Outcome tags the result of an equip attempt, so "rejected" is
// distinguishable from "equipped into a previously empty slot".
type Outcome uint8

const (
	// OutcomeRejected means the slot is unknown or incompatible; nothing
	// changed.
	OutcomeRejected Outcome = iota
	// OutcomeEquipped means the item now occupies the slot.
	OutcomeEquipped
)

// Result reports an equip attempt. Previous carries the displaced item when
// the slot was occupied.
type Result struct {
	Outcome  Outcome
	Previous *item.Item
}

// Equipped reports whether the attempt succeeded.
func (r Result) Equipped() bool { return r.Outcome == OutcomeEquipped }

// Equipment is a registry of typed slots with the currently worn items.
// Slots persist for the lifetime of the object; equip and unequip only swap
// the per-slot reference.
type Equipment struct {
	slots []SlotConfig // registration order
	index map[string]int
	worn  map[string]*item.Item

	bus bus.EventBus
	log log.Log
}

// Option configures equipment construction.
type Option func(*Equipment)

// WithBus attaches an existing event bus instead of a private one.
func WithBus(b bus.EventBus) Option {
	return func(eq *Equipment) {
		if b != nil {
			eq.bus = b
		}
	}
}

// WithLogger routes equipment diagnostics into the given logger.
func WithLogger(l log.Log) Option {
	return func(eq *Equipment) {
		if l != nil {
			eq.log = l
		}
	}
}

// New declares the given slots. Duplicate slot IDs keep the first
// declaration; later ones are dropped with a warning.
func New(slots []SlotConfig, opts ...Option) *Equipment {
	eq := &Equipment{
		index: make(map[string]int),
		worn:  make(map[string]*item.Item),
		bus:   bus.New(),
		log:   log.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(eq)
		}
	}
	for _, cfg := range slots {
		if err := eq.RegisterSlot(cfg); err != nil {
			eq.log.Warn("slot dropped", log.String("slot", cfg.ID), log.Err(err))
		}
	}
	return eq
}

// RegisterSlot adds a slot after construction. Slot IDs must be unique and
// non-empty.
func (eq *Equipment) RegisterSlot(cfg SlotConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("slot id is empty")
	}
	if _, exists := eq.index[cfg.ID]; exists {
		return fmt.Errorf("slot %s already registered", cfg.ID)
	}
	eq.index[cfg.ID] = len(eq.slots)
	eq.slots = append(eq.slots, cfg)
	return nil
}

// Bus returns the event bus this equipment publishes to.
func (eq *Equipment) Bus() bus.EventBus { return eq.bus }

// Slots returns the slot declarations in registration order.
func (eq *Equipment) Slots() []SlotConfig {
	out := make([]SlotConfig, len(eq.slots))
	copy(out, eq.slots)
	return out
}

// HasSlot reports whether the slot ID is registered.
func (eq *Equipment) HasSlot(slotID string) bool {
	_, ok := eq.index[slotID]
	return ok
}

// GetEquipped returns the item worn in the slot, nil when the slot is empty
// or unknown.
func (eq *Equipment) GetEquipped(slotID string) *item.Item {
	return eq.worn[slotID]
}

// AllEquipped returns the worn items in slot registration order.
func (eq *Equipment) AllEquipped() []*item.Item {
	out := make([]*item.Item, 0, len(eq.worn))
	for _, cfg := range eq.slots {
		if it := eq.worn[cfg.ID]; it != nil {
			out = append(out, it)
		}
	}
	return out
}

// CanEquipAt reports whether the item may occupy the slot: the slot must be
// registered, the item must carry an equip-type tag, and the tag must be in
// the slot's accepted set. Pure function of item and slot configuration.
func (eq *Equipment) CanEquipAt(it *item.Item, slotID string) bool {
	if it == nil {
		return false
	}
	idx, ok := eq.index[slotID]
	if !ok {
		return false
	}
	return eq.slots[idx].Accepts(it.EquipSlot())
}

// Equip puts the item into the slot, unconditionally displacing whatever was
// worn there. A rejected attempt changes nothing.
//
// Emits Unequipped for the displaced item (always first), then Equipped for
// the new item, then EquipmentChanged.
func (eq *Equipment) Equip(it *item.Item, slotID string) Result {
	if !eq.CanEquipAt(it, slotID) {
		return Result{Outcome: OutcomeRejected}
	}
	prev := eq.worn[slotID]
	eq.worn[slotID] = it
	if prev != nil {
		prev.SetLocation(item.Unplaced())
		eq.emit(events.TypeUnequipped, events.Unequipped{Slot: slotID, Item: prev})
	}
	it.SetLocation(item.InSlot(slotID))
	eq.log.Debug("item equipped", log.String("slot", slotID), log.String("item", it.ID()))
	eq.emit(events.TypeEquipped, events.Equipped{Slot: slotID, Item: it})
	eq.emitChanged()
	return Result{Outcome: OutcomeEquipped, Previous: prev}
}

// Unequip clears the slot and returns the removed item, nil when the slot
// was empty or unknown. An empty slot emits nothing.
//
// Emits Unequipped, then EquipmentChanged.
func (eq *Equipment) Unequip(slotID string) *item.Item {
	it := eq.worn[slotID]
	if it == nil {
		return nil
	}
	delete(eq.worn, slotID)
	it.SetLocation(item.Unplaced())
	eq.log.Debug("item unequipped", log.String("slot", slotID), log.String("item", it.ID()))
	eq.emit(events.TypeUnequipped, events.Unequipped{Slot: slotID, Item: it})
	eq.emitChanged()
	return it
}

// UnequipAll clears every slot in registration order and returns the removed
// items.
func (eq *Equipment) UnequipAll() []*item.Item {
	out := make([]*item.Item, 0, len(eq.worn))
	for _, cfg := range eq.slots {
		if it := eq.Unequip(cfg.ID); it != nil {
			out = append(out, it)
		}
	}
	return out
}

// FindCompatibleSlots returns the IDs of all slots accepting the item's
// equip-type tag, in registration order.
func (eq *Equipment) FindCompatibleSlots(it *item.Item) []string {
	if it == nil {
		return nil
	}
	tag := it.EquipSlot()
	return sequence.Map(
		sequence.From(eq.slots).Filter(func(cfg SlotConfig) bool { return cfg.Accepts(tag) }),
		func(cfg SlotConfig) string { return cfg.ID },
	).Collect()
}

// IsEquipped reports whether this exact instance is worn in some slot,
// compared by instance ID.
func (eq *Equipment) IsEquipped(it *item.Item) bool {
	_, ok := eq.SlotOf(it)
	return ok
}

// SlotOf returns the slot currently holding this exact instance.
func (eq *Equipment) SlotOf(it *item.Item) (string, bool) {
	if it == nil {
		return "", false
	}
	for _, cfg := range eq.slots {
		if worn := eq.worn[cfg.ID]; worn != nil && worn.Same(it) {
			return cfg.ID, true
		}
	}
	return "", false
}

// Validate checks that every worn item is compatible with its slot and
// carries the matching location tag, and that no instance occupies two
// slots.
func (eq *Equipment) Validate() error {
	seen := make(map[string]string, len(eq.worn))
	for _, cfg := range eq.slots {
		it := eq.worn[cfg.ID]
		if it == nil {
			continue
		}
		if !cfg.Accepts(it.EquipSlot()) {
			return fmt.Errorf("slot %s holds incompatible item %s (%q)", cfg.ID, it.ID(), it.EquipSlot())
		}
		loc := it.Location()
		if loc.Kind != item.LocEquipped || loc.SlotID != cfg.ID {
			return fmt.Errorf("slot %s holds item %s with foreign location %s", cfg.ID, it.InstanceID(), loc)
		}
		if prev, dup := seen[it.InstanceID()]; dup {
			return fmt.Errorf("item %s worn in both %s and %s", it.InstanceID(), prev, cfg.ID)
		}
		seen[it.InstanceID()] = cfg.ID
	}
	return nil
}

// Clone returns a deep copy with cloned worn items and a fresh bus.
func (eq *Equipment) Clone() *Equipment {
	cp := &Equipment{
		slots: make([]SlotConfig, len(eq.slots)),
		index: make(map[string]int, len(eq.index)),
		worn:  make(map[string]*item.Item, len(eq.worn)),
		bus:   bus.New(),
		log:   eq.log,
	}
	copy(cp.slots, eq.slots)
	for id, idx := range eq.index {
		cp.index[id] = idx
	}
	for slot, it := range eq.worn {
		cp.worn[slot] = it.Clone()
	}
	return cp
}

func (eq *Equipment) emit(eventType string, payload any) {
	if err := eq.bus.Publish(bus.NewEvent(eventType, "equipment", payload)); err != nil {
		eq.log.Warn("event handler failed", log.String("event", eventType), log.Err(err))
	}
}

func (eq *Equipment) emitChanged() {
	eq.emit(events.TypeEquipmentChanged, nil)
}
