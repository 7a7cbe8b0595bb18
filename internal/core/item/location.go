package item

import "fmt"

// LocationKind tags where an item instance currently lives.
type LocationKind uint8

const (
	// LocUnplaced means the item belongs to no container.
	LocUnplaced LocationKind = iota
	// LocGrid means the item occupies cells of an inventory grid.
	LocGrid
	// LocEquipped means the item sits in an equipment slot.
	LocEquipped
)

// Location is the tagged container membership of an item. Exactly one
// container may claim an item at a time; containers update the location when
// they accept or release it.
type Location struct {
	Kind LocationKind

	// Grid placement, valid when Kind == LocGrid. X and Y are the top-left
	// cell of the item footprint.
	InventoryID string
	X           int
	Y           int

	// Slot identifier, valid when Kind == LocEquipped.
	SlotID string
}

// Unplaced returns the sentinel location of an item outside any container.
func Unplaced() Location {
	return Location{Kind: LocUnplaced, X: -1, Y: -1}
}

// InGrid returns a grid location anchored at (x, y).
func InGrid(inventoryID string, x, y int) Location {
	return Location{Kind: LocGrid, InventoryID: inventoryID, X: x, Y: y}
}

// InSlot returns an equipment slot location.
func InSlot(slotID string) Location {
	return Location{Kind: LocEquipped, SlotID: slotID, X: -1, Y: -1}
}

func (l Location) String() string {
	switch l.Kind {
	case LocGrid:
		return fmt.Sprintf("grid(%s@%d,%d)", l.InventoryID, l.X, l.Y)
	case LocEquipped:
		return fmt.Sprintf("slot(%s)", l.SlotID)
	default:
		return "unplaced"
	}
}
