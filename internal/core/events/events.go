// Package events defines the notification vocabulary containers publish
// through the bus. Presentation layers subscribe to these types and re-read
// container state; the payloads carry just enough detail for fine-grained
// updates.
package events

import "github.com/gridquest/gridquest/internal/core/item"

// Inventory event types. TypeInventoryChanged always fires last among the
// events of a single operation and is the recommended generic re-render
// signal.
const (
	TypeItemAdded        = "inventory.item_added"
	TypeItemRemoved      = "inventory.item_removed"
	TypeItemMoved        = "inventory.item_moved"
	TypeInventoryChanged = "inventory.changed"
)

// Equipment event types. TypeEquipmentChanged always fires last among the
// events of a single operation.
const (
	TypeEquipped         = "equipment.equipped"
	TypeUnequipped       = "equipment.unequipped"
	TypeEquipmentChanged = "equipment.changed"
)

// ItemAdded reports an item newly tracked by an inventory, anchored at its
// top-left cell.
type ItemAdded struct {
	Item *item.Item
	X    int
	Y    int
}

// ItemRemoved reports an item leaving an inventory.
type ItemRemoved struct {
	Item *item.Item
}

// ItemMoved reports an item repositioned within the same inventory.
type ItemMoved struct {
	Item  *item.Item
	FromX int
	FromY int
	ToX   int
	ToY   int
}

// Equipped reports an item entering an equipment slot.
type Equipped struct {
	Slot string
	Item *item.Item
}

// Unequipped reports an item leaving an equipment slot.
type Unequipped struct {
	Slot string
	Item *item.Item
}
