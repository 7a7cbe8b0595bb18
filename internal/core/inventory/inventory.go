// Package inventory implements grid bin-packing storage for items with
// multi-cell footprints and stack merging.
//
// An Inventory is owned by a single logical actor: all operations run to
// completion on the calling goroutine and the structure carries no locks.
// State changes are announced synchronously through the attached event bus,
// which is the only integration surface toward presentation layers.
package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gridquest/gridquest/internal/core/events"
	"github.com/gridquest/gridquest/internal/core/events/bus"
	"github.com/gridquest/gridquest/internal/core/item"
	"github.com/gridquest/gridquest/internal/core/observability/log"
	"github.com/gridquest/gridquest/pkg/sequence"
)

// Inventory is a fixed-size width × height grid of cells. Every cell holds
// at most one item reference; a multi-cell item occupies an axis-aligned
// rectangle of cells all referencing the same instance. A companion tracked
// list allows O(items) iteration independent of grid size.
type Inventory struct {
	id     string
	width  int
	height int

	// cells is row-major, len width*height. Zero-size grids are valid;
	// placement always fails on them.
	cells []*item.Item

	// items is the tracked set in insertion order, so scans and query
	// results are reproducible given identical state.
	items []*item.Item

	bus bus.EventBus
	log log.Log
}

// Option configures inventory construction.
type Option func(*Inventory)

// WithBus attaches an existing event bus instead of a private one. Several
// containers may share a bus so observers subscribe once.
func WithBus(b bus.EventBus) Option {
	return func(inv *Inventory) {
		if b != nil {
			inv.bus = b
		}
	}
}

// WithLogger routes inventory diagnostics into the given logger.
func WithLogger(l log.Log) Option {
	return func(inv *Inventory) {
		if l != nil {
			inv.log = l
		}
	}
}

// WithID overrides the generated inventory identifier. Identifiers appear in
// item locations and event sources.
func WithID(id string) Option {
	return func(inv *Inventory) {
		if id != "" {
			inv.id = id
		}
	}
}

// New allocates a grid with the configured dimensions. Negative dimensions
// are clamped to zero. The grid is never resized.
func New(width, height int, opts ...Option) *Inventory {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	inv := &Inventory{
		id:     uuid.NewString(),
		width:  width,
		height: height,
		cells:  make([]*item.Item, width*height),
		bus:    bus.New(),
		log:    log.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(inv)
		}
	}
	return inv
}

// ID returns the inventory identifier used in item locations and events.
func (inv *Inventory) ID() string { return inv.id }

func (inv *Inventory) Width() int  { return inv.width }
func (inv *Inventory) Height() int { return inv.height }

// Bus returns the event bus this inventory publishes to.
func (inv *Inventory) Bus() bus.EventBus { return inv.bus }

// Items returns a copy of the tracked set in insertion order.
func (inv *Inventory) Items() []*item.Item {
	out := make([]*item.Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Count returns the number of tracked items.
func (inv *Inventory) Count() int { return len(inv.items) }

// IsEmpty reports whether no items are tracked.
func (inv *Inventory) IsEmpty() bool { return len(inv.items) == 0 }

// ItemAt returns the occupant of cell (x, y). Out-of-bounds coordinates
// return nil rather than failing.
func (inv *Inventory) ItemAt(x, y int) *item.Item {
	if x < 0 || y < 0 || x >= inv.width || y >= inv.height {
		return nil
	}
	return inv.cells[y*inv.width+x]
}

// CanPlaceAt reports whether the item footprint anchored at (x, y) lies
// fully within bounds and covers only cells that are empty or already
// occupied by this same instance. Self-overlap is legal so callers can probe
// in-place repositioning.
func (inv *Inventory) CanPlaceAt(it *item.Item, x, y int) bool {
	if it == nil {
		return false
	}
	w, h := it.Width(), it.Height()
	if x < 0 || y < 0 || x+w > inv.width || y+h > inv.height {
		return false
	}
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			if cur := inv.cells[cy*inv.width+cx]; cur != nil && !cur.Same(it) {
				return false
			}
		}
	}
	return true
}

// PlaceAt puts the item at (x, y), serving both initial placement and
// relocation: an already tracked item has its old footprint cleared first.
// Returns false and leaves state untouched when the footprint does not fit.
//
// Emits ItemAdded or ItemMoved, then InventoryChanged.
func (inv *Inventory) PlaceAt(it *item.Item, x, y int) bool {
	if !inv.CanPlaceAt(it, x, y) {
		return false
	}
	tracked := inv.indexOf(it) >= 0
	var fromX, fromY int
	if tracked {
		loc := it.Location()
		fromX, fromY = loc.X, loc.Y
		inv.clearFootprint(it)
	}
	inv.writeFootprint(it, x, y)
	it.SetLocation(item.InGrid(inv.id, x, y))
	if tracked {
		inv.log.Debug("item moved",
			log.String("inventory", inv.id), log.String("item", it.ID()),
			log.Int("x", x), log.Int("y", y))
		inv.emit(events.TypeItemMoved, events.ItemMoved{Item: it, FromX: fromX, FromY: fromY, ToX: x, ToY: y})
	} else {
		inv.items = append(inv.items, it)
		inv.log.Debug("item added",
			log.String("inventory", inv.id), log.String("item", it.ID()),
			log.Int("x", x), log.Int("y", y))
		inv.emit(events.TypeItemAdded, events.ItemAdded{Item: it, X: x, Y: y})
	}
	inv.emitChanged()
	return true
}

// AddItem stores the item with auto-placement. Stackable items first merge
// into compatible stacks with remaining capacity; any remaining quantity is
// placed into the first empty region found scanning rows top-to-bottom,
// columns left-to-right.
//
// Returns false only when quantity remains and no empty region of
// sufficient size exists. An incoming item whose quantity was already zero
// is reported as stored.
func (inv *Inventory) AddItem(it *item.Item) bool {
	if it == nil {
		return false
	}
	merged := inv.mergeIntoStacks(it)
	if it.Quantity() == 0 {
		// Fully absorbed into existing stacks; the incoming instance is now
		// logically empty and belongs to no container.
		it.SetLocation(item.Unplaced())
		if merged {
			inv.emitChanged()
		}
		return true
	}
	x, y, ok := inv.FindEmptySpace(it.Width(), it.Height())
	if !ok {
		if merged {
			inv.emitChanged()
		}
		inv.log.Debug("inventory full",
			log.String("inventory", inv.id), log.String("item", it.ID()))
		return false
	}
	return inv.PlaceAt(it, x, y)
}

// mergeIntoStacks transfers quantity from it into compatible tracked stacks
// and reports whether any transfer happened.
func (inv *Inventory) mergeIntoStacks(it *item.Item) bool {
	if !it.Stackable() {
		return false
	}
	merged := false
	for _, existing := range inv.items {
		if it.Quantity() == 0 {
			break
		}
		if !existing.CanStackWith(it) {
			continue
		}
		fit := existing.FreeCapacity()
		if fit == 0 {
			continue
		}
		if fit > it.Quantity() {
			fit = it.Quantity()
		}
		existing.SetQuantity(existing.Quantity() + fit)
		it.SetQuantity(it.Quantity() - fit)
		merged = true
	}
	return merged
}

// RemoveItem clears the item footprint, untracks the instance and resets its
// location to the unplaced sentinel. Returns false when the item is not
// tracked.
//
// Emits ItemRemoved, then InventoryChanged.
func (inv *Inventory) RemoveItem(it *item.Item) bool {
	if !inv.detach(it) {
		return false
	}
	it.SetLocation(item.Unplaced())
	inv.emit(events.TypeItemRemoved, events.ItemRemoved{Item: it})
	inv.emitChanged()
	return true
}

// detach clears the footprint and untracks the item without touching its
// location tag. Transfer hands the location straight to the target.
func (inv *Inventory) detach(it *item.Item) bool {
	idx := inv.indexOf(it)
	if idx < 0 {
		return false
	}
	inv.clearFootprint(it)
	inv.items = append(inv.items[:idx], inv.items[idx+1:]...)
	return true
}

// FindEmptySpace returns the first top-left coordinate whose w × h region is
// entirely empty, scanning rows top-to-bottom and columns left-to-right.
func (inv *Inventory) FindEmptySpace(w, h int) (int, int, bool) {
	if w < 1 || h < 1 {
		return 0, 0, false
	}
	for y := 0; y+h <= inv.height; y++ {
		for x := 0; x+w <= inv.width; x++ {
			if inv.regionEmpty(x, y, w, h) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func (inv *Inventory) regionEmpty(x, y, w, h int) bool {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			if inv.cells[cy*inv.width+cx] != nil {
				return false
			}
		}
	}
	return true
}

// FindItemByID returns the first tracked item with the given definition ID.
func (inv *Inventory) FindItemByID(id string) *item.Item {
	it, ok := sequence.From(inv.items).
		Filter(func(it *item.Item) bool { return it.ID() == id }).
		First()
	if !ok {
		return nil
	}
	return it
}

// FindAllItemsByID returns every tracked item with the given definition ID
// in insertion order.
func (inv *Inventory) FindAllItemsByID(id string) []*item.Item {
	return sequence.From(inv.items).
		Filter(func(it *item.Item) bool { return it.ID() == id }).
		Collect()
}

// CanAccept reports whether AddItem would fully absorb the item: enough
// free capacity across compatible stacks, or an empty region fitting the
// footprint for the remainder.
func (inv *Inventory) CanAccept(it *item.Item) bool {
	if it == nil {
		return false
	}
	remaining := it.Quantity()
	if remaining == 0 {
		return true
	}
	if it.Stackable() {
		for _, existing := range inv.items {
			if existing.CanStackWith(it) {
				remaining -= existing.FreeCapacity()
				if remaining <= 0 {
					return true
				}
			}
		}
	}
	_, _, ok := inv.FindEmptySpace(it.Width(), it.Height())
	return ok
}

// TransferTo moves the item into target with auto-placement. The move is
// atomic from the caller's perspective: the source is only touched after the
// target is known to fully absorb the item. Returns false, leaving both
// inventories unchanged, when the item is not tracked here or the target
// cannot take it.
func (inv *Inventory) TransferTo(it *item.Item, target *Inventory) bool {
	if target == nil || inv.indexOf(it) < 0 {
		return false
	}
	if !target.CanAccept(it) {
		return false
	}
	inv.release(it)
	target.AddItem(it)
	return true
}

// TransferToAt moves the item into target at explicit coordinates. Same
// atomicity contract as TransferTo.
func (inv *Inventory) TransferToAt(it *item.Item, target *Inventory, x, y int) bool {
	if target == nil || inv.indexOf(it) < 0 {
		return false
	}
	if !target.CanPlaceAt(it, x, y) {
		return false
	}
	inv.release(it)
	target.PlaceAt(it, x, y)
	return true
}

// release detaches the item on the source side of a transfer and fires the
// removal notifications.
func (inv *Inventory) release(it *item.Item) {
	inv.detach(it)
	inv.emit(events.TypeItemRemoved, events.ItemRemoved{Item: it})
	inv.emitChanged()
}

// Clear removes every tracked item one at a time, so per-item observers
// still fire for each removal.
func (inv *Inventory) Clear() {
	for _, it := range inv.Items() {
		inv.RemoveItem(it)
	}
}

// Validate checks the structural invariants of the grid: every occupied cell
// references a tracked item, every tracked item occupies exactly its
// width × height rectangle at its stored anchor, and quantities are within
// bounds. Rectangle exactness plus single-occupancy of cells implies
// footprint non-overlap.
func (inv *Inventory) Validate() error {
	tracked := make(map[string]*item.Item, len(inv.items))
	for _, it := range inv.items {
		if _, dup := tracked[it.InstanceID()]; dup {
			return fmt.Errorf("inventory %s: item %s tracked twice", inv.id, it.InstanceID())
		}
		tracked[it.InstanceID()] = it
	}
	counts := make(map[string]int, len(inv.items))
	for i, cur := range inv.cells {
		if cur == nil {
			continue
		}
		if _, ok := tracked[cur.InstanceID()]; !ok {
			return fmt.Errorf("inventory %s: cell %d occupied by untracked item %s", inv.id, i, cur.InstanceID())
		}
		counts[cur.InstanceID()]++
	}
	for _, it := range inv.items {
		loc := it.Location()
		if loc.Kind != item.LocGrid || loc.InventoryID != inv.id {
			return fmt.Errorf("inventory %s: item %s has foreign location %s", inv.id, it.InstanceID(), loc)
		}
		w, h := it.Width(), it.Height()
		if loc.X < 0 || loc.Y < 0 || loc.X+w > inv.width || loc.Y+h > inv.height {
			return fmt.Errorf("inventory %s: item %s anchored out of bounds at (%d,%d)", inv.id, it.InstanceID(), loc.X, loc.Y)
		}
		for cy := loc.Y; cy < loc.Y+h; cy++ {
			for cx := loc.X; cx < loc.X+w; cx++ {
				if cur := inv.cells[cy*inv.width+cx]; cur == nil || !cur.Same(it) {
					return fmt.Errorf("inventory %s: item %s footprint broken at (%d,%d)", inv.id, it.InstanceID(), cx, cy)
				}
			}
		}
		if counts[it.InstanceID()] != w*h {
			return fmt.Errorf("inventory %s: item %s occupies %d cells, want %d", inv.id, it.InstanceID(), counts[it.InstanceID()], w*h)
		}
		if q := it.Quantity(); q < 0 || q > it.MaxStack() {
			return fmt.Errorf("inventory %s: item %s quantity %d out of range", inv.id, it.InstanceID(), q)
		}
	}
	return nil
}

// Clone returns a deep copy: cloned items on a fresh grid with a fresh bus,
// sharing definitions and the logger. Events from the clone do not reach
// subscribers of the original.
func (inv *Inventory) Clone() *Inventory {
	cp := &Inventory{
		id:     inv.id,
		width:  inv.width,
		height: inv.height,
		cells:  make([]*item.Item, len(inv.cells)),
		items:  make([]*item.Item, 0, len(inv.items)),
		bus:    bus.New(),
		log:    inv.log,
	}
	for _, it := range inv.items {
		dup := it.Clone()
		cp.items = append(cp.items, dup)
		loc := it.Location()
		for cy := loc.Y; cy < loc.Y+it.Height(); cy++ {
			for cx := loc.X; cx < loc.X+it.Width(); cx++ {
				cp.cells[cy*cp.width+cx] = dup
			}
		}
	}
	return cp
}

func (inv *Inventory) indexOf(it *item.Item) int {
	if it == nil {
		return -1
	}
	for i, cur := range inv.items {
		if cur.Same(it) {
			return i
		}
	}
	return -1
}

func (inv *Inventory) writeFootprint(it *item.Item, x, y int) {
	for cy := y; cy < y+it.Height(); cy++ {
		for cx := x; cx < x+it.Width(); cx++ {
			inv.cells[cy*inv.width+cx] = it
		}
	}
}

// clearFootprint releases only cells referencing this instance, guarding
// against stale anchors.
func (inv *Inventory) clearFootprint(it *item.Item) {
	loc := it.Location()
	if loc.Kind != item.LocGrid {
		return
	}
	for cy := loc.Y; cy < loc.Y+it.Height(); cy++ {
		for cx := loc.X; cx < loc.X+it.Width(); cx++ {
			if cx < 0 || cy < 0 || cx >= inv.width || cy >= inv.height {
				continue
			}
			if cur := inv.cells[cy*inv.width+cx]; cur != nil && cur.Same(it) {
				inv.cells[cy*inv.width+cx] = nil
			}
		}
	}
}

func (inv *Inventory) emit(eventType string, payload any) {
	if err := inv.bus.Publish(bus.NewEvent(eventType, inv.id, payload)); err != nil {
		inv.log.Warn("event handler failed",
			log.String("inventory", inv.id), log.String("event", eventType), log.Err(err))
	}
}

func (inv *Inventory) emitChanged() {
	inv.emit(events.TypeInventoryChanged, nil)
}
