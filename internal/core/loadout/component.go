// Package loadout composes one inventory grid with an optional equipment
// registry and coordinates the invariants neither container can see alone:
// an item never occupies a grid cell and an equipment slot at the same time,
// and multi-step equip/unequip operations either complete or roll back to
// the exact pre-call state.
package loadout

import (
	"fmt"

	"github.com/gridquest/gridquest/internal/core/equipment"
	"github.com/gridquest/gridquest/internal/core/events/bus"
	"github.com/gridquest/gridquest/internal/core/inventory"
	"github.com/gridquest/gridquest/internal/core/item"
	"github.com/gridquest/gridquest/internal/core/models"
	"github.com/gridquest/gridquest/internal/core/observability/log"
)

// ComponentTypeID identifies the loadout component in the object model.
const ComponentTypeID models.ComponentID = 0x4C4F4144 // "LOAD"

var _ models.Component = (*Component)(nil)

// Component owns exactly one Inventory and at most one Equipment. Both
// publish to a shared event bus so presentation layers subscribe once.
type Component struct {
	inv *inventory.Inventory
	eq  *equipment.Equipment

	bus    bus.EventBus
	log    log.Log
	target any
}

// Option configures component construction.
type Option func(*config)

type config struct {
	width  int
	height int
	slots  []equipment.SlotConfig
	hasEq  bool
	bus    bus.EventBus
	log    log.Log
	target any
}

// WithGrid sizes the owned inventory. Without it the inventory is
// zero-capacity and every placement fails.
func WithGrid(width, height int) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}

// WithSlots attaches an equipment registry with the given layout. Without it
// the component has no equipment and every equip attempt fails.
func WithSlots(slots []equipment.SlotConfig) Option {
	return func(c *config) {
		c.slots = slots
		c.hasEq = true
	}
}

// WithBus shares an existing event bus across both containers.
func WithBus(b bus.EventBus) Option {
	return func(c *config) {
		if b != nil {
			c.bus = b
		}
	}
}

// WithLogger routes diagnostics of both containers into the given logger.
func WithLogger(l log.Log) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTarget sets the gameplay object handed to item effect hooks, typically
// the owning entity or actor.
func WithTarget(target any) Option {
	return func(c *config) {
		c.target = target
	}
}

// New builds a component. Defaults: zero-capacity grid, no equipment, a
// private shared bus, silent logger.
func New(opts ...Option) *Component {
	cfg := config{bus: bus.New(), log: log.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	c := &Component{
		inv: inventory.New(cfg.width, cfg.height,
			inventory.WithBus(cfg.bus), inventory.WithLogger(cfg.log)),
		bus:    cfg.bus,
		log:    cfg.log,
		target: cfg.target,
	}
	if cfg.hasEq {
		c.eq = equipment.New(cfg.slots,
			equipment.WithBus(cfg.bus), equipment.WithLogger(cfg.log))
	}
	return c
}

// Inventory returns the owned grid.
func (c *Component) Inventory() *inventory.Inventory { return c.inv }

// Equipment returns the owned slot registry, nil when none was configured.
func (c *Component) Equipment() *equipment.Equipment { return c.eq }

// Bus returns the event bus shared by both containers.
func (c *Component) Bus() bus.EventBus { return c.bus }

// AddItem stores the item in the inventory with auto-placement and fires its
// pickup hook on success.
func (c *Component) AddItem(it *item.Item) bool {
	if !c.inv.AddItem(it) {
		return false
	}
	c.fire(it, it.Definition().Effects.FirePickup)
	return true
}

// RemoveItem takes the item out of whichever container holds it. A worn item
// is unequipped rather than looked up in the grid, since the two sets are
// disjoint. Fires the drop hook on success.
func (c *Component) RemoveItem(it *item.Item) bool {
	if it == nil {
		return false
	}
	if c.eq != nil {
		if slot, ok := c.eq.SlotOf(it); ok {
			c.eq.Unequip(slot)
			c.fire(it, it.Definition().Effects.FireDrop)
			return true
		}
	}
	if !c.inv.RemoveItem(it) {
		return false
	}
	c.fire(it, it.Definition().Effects.FireDrop)
	return true
}

// EquipItem moves the item into the given slot, or into its first compatible
// slot when slotID is empty. A displaced item is returned to the inventory.
//
// Rollback contract: when the displaced item does not fit back into the
// inventory, the operation reverses itself completely — the displaced item
// is re-equipped and the original item returns to its grid cells — and
// false is reported. The combined inventory-plus-equipment state is left
// unchanged on every failure path.
func (c *Component) EquipItem(it *item.Item, slotID string) bool {
	if it == nil || c.eq == nil {
		return false
	}
	if slotID == "" {
		slots := c.eq.FindCompatibleSlots(it)
		if len(slots) == 0 {
			return false
		}
		slotID = slots[0]
	}
	if !c.eq.CanEquipAt(it, slotID) {
		return false
	}

	// The origin is captured before anything mutates so every failure path
	// can put the item back exactly where it came from.
	origin := it.Location()

	if slot, worn := c.eq.SlotOf(it); worn {
		if slot == slotID {
			return true
		}
		// Moving between slots: vacate the old one so the instance is never
		// worn twice.
		c.eq.Unequip(slot)
	}

	wasInGrid := origin.Kind == item.LocGrid && c.inv.RemoveItem(it)

	res := c.eq.Equip(it, slotID)
	if !res.Equipped() {
		if wasInGrid {
			c.inv.PlaceAt(it, origin.X, origin.Y)
		}
		return false
	}

	if prev := res.Previous; prev != nil {
		// CanAccept is probed before AddItem so a doomed store cannot leave
		// partial stack merges behind.
		if !c.inv.CanAccept(prev) {
			// No room for the displaced item: undo everything. The grid was
			// only ever freed, so the original cells are still open.
			c.eq.Equip(prev, slotID)
			switch {
			case wasInGrid:
				c.inv.PlaceAt(it, origin.X, origin.Y)
			case origin.Kind == item.LocEquipped:
				c.eq.Equip(it, origin.SlotID)
			default:
				it.SetLocation(origin)
			}
			c.log.Debug("equip rolled back",
				log.String("slot", slotID), log.String("item", it.ID()))
			return false
		}
		c.inv.AddItem(prev)
		c.fire(prev, prev.Definition().Effects.FireUnequip)
	}
	c.fire(it, it.Definition().Effects.FireEquip)
	return true
}

// UnequipItem clears the slot and places the removed item into the first
// empty grid region fitting its footprint. The region is found before
// anything mutates, so a full inventory leaves the equipment untouched.
func (c *Component) UnequipItem(slotID string) bool {
	if c.eq == nil {
		return false
	}
	it := c.eq.GetEquipped(slotID)
	if it == nil {
		return false
	}
	x, y, ok := c.inv.FindEmptySpace(it.Width(), it.Height())
	if !ok {
		c.log.Debug("unequip rejected, inventory full",
			log.String("slot", slotID), log.String("item", it.ID()))
		return false
	}
	c.eq.Unequip(slotID)
	c.inv.PlaceAt(it, x, y)
	c.fire(it, it.Definition().Effects.FireUnequip)
	return true
}

// UseItem fires the item's use effect against the component target and
// discards the instance once its quantity reaches zero.
func (c *Component) UseItem(it *item.Item) bool {
	if it == nil {
		return false
	}
	if !it.Use(&item.EffectContext{Target: c.target, Log: c.log}) {
		return false
	}
	if it.Quantity() == 0 {
		c.RemoveItem(it)
	}
	return true
}

// FindItem searches the inventory first, then the worn items, by definition
// ID.
func (c *Component) FindItem(id string) *item.Item {
	if it := c.inv.FindItemByID(id); it != nil {
		return it
	}
	if c.eq != nil {
		for _, it := range c.eq.AllEquipped() {
			if it.ID() == id {
				return it
			}
		}
	}
	return nil
}

// AllItems returns the inventory contents followed by the worn items. The
// two sets are disjoint under normal operation; no deduplication happens.
func (c *Component) AllItems() []*item.Item {
	out := c.inv.Items()
	if c.eq != nil {
		out = append(out, c.eq.AllEquipped()...)
	}
	return out
}

// TypeID implements models.Component.
func (c *Component) TypeID() models.ComponentID { return ComponentTypeID }

// TypeName implements models.Component.
func (c *Component) TypeName() string { return "loadout" }

// Validate checks both containers plus the cross-container exclusivity: no
// instance may be tracked by the grid and worn at the same time.
func (c *Component) Validate() error {
	if err := c.inv.Validate(); err != nil {
		return err
	}
	if c.eq == nil {
		return nil
	}
	if err := c.eq.Validate(); err != nil {
		return err
	}
	for _, it := range c.inv.Items() {
		if c.eq.IsEquipped(it) {
			return fmt.Errorf("item %s present in both grid and equipment", it.InstanceID())
		}
	}
	return nil
}

// Clone implements models.Component with a deep copy on a fresh bus.
func (c *Component) Clone() models.Component {
	cp := &Component{
		inv:    c.inv.Clone(),
		bus:    bus.New(),
		log:    c.log,
		target: c.target,
	}
	if c.eq != nil {
		cp.eq = c.eq.Clone()
	}
	return cp
}

func (c *Component) fire(it *item.Item, hook func(*item.EffectContext)) {
	hook(&item.EffectContext{Item: it, Target: c.target, Log: c.log})
}
