package item

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Definition is the immutable description shared by every instance of an
// item. Instances reference a Definition and never copy it.
//
// ID identifies the definition, not an instance: two potions spawned from the
// same definition share the same ID but carry distinct instance IDs.
type Definition struct {
	ID   string
	Name string

	// Footprint in grid cells. Both dimensions are at least 1.
	Width  int
	Height int

	// MaxStack of 1 means the item does not stack.
	MaxStack int

	Rarity Rarity

	// EquipSlot is the type tag matched against equipment slot accepted-type
	// sets. Empty means the item cannot be equipped.
	EquipSlot string

	// Consumable items lose one unit of quantity per use.
	Consumable bool

	Stats map[string]float64

	Effects Effects
}

// Stackable reports whether instances of this definition can merge.
func (d *Definition) Stackable() bool {
	return d != nil && d.MaxStack > 1
}

// Validate checks the structural invariants of a definition.
func (d *Definition) Validate() error {
	if d == nil {
		return errors.New("nil definition")
	}
	if d.ID == "" {
		return errors.New("definition id is empty")
	}
	if d.Width < 1 || d.Height < 1 {
		return fmt.Errorf("definition %s: footprint %dx%d is invalid", d.ID, d.Width, d.Height)
	}
	if d.MaxStack < 1 {
		return fmt.Errorf("definition %s: max stack %d is invalid", d.ID, d.MaxStack)
	}
	return nil
}

// Fingerprint hashes the identity-relevant fields of a definition. Two
// definitions with the same ID but different fingerprints describe
// conflicting content. Effect hooks do not participate.
func (d *Definition) Fingerprint() uint64 {
	h := xxhash.New()
	_, _ = fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d\x00%d\x00%d\x00%s\x00%t",
		d.ID, d.Name, d.Width, d.Height, d.MaxStack, d.Rarity, d.EquipSlot, d.Consumable)
	keys := make([]string, 0, len(d.Stats))
	for k := range d.Stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(h, "\x00%s=%g", k, d.Stats[k])
	}
	return h.Sum64()
}
