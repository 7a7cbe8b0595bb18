// Package catalog is the content registry for item definitions. Gameplay
// code registers definitions (in code or from YAML/JSON content files) and
// spawns runtime instances from them; containers re-resolve items against
// the catalog by definition ID.
package catalog

import (
	"fmt"

	"github.com/gridquest/gridquest/internal/core/item"
	"github.com/gridquest/gridquest/internal/core/observability/log"
)

// Catalog maps definition IDs to immutable definitions. Re-registering an
// identical definition is a no-op; registering a conflicting one (same ID,
// different fingerprint) fails so content packs cannot silently overwrite
// each other.
type Catalog struct {
	defs   map[string]*item.Definition
	prints map[string]uint64
	order  []string
	log    log.Log
}

// Option configures catalog construction.
type Option func(*Catalog)

// WithLogger routes catalog diagnostics into the given logger.
func WithLogger(l log.Log) Option {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		defs:   make(map[string]*item.Definition),
		prints: make(map[string]uint64),
		log:    log.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Register validates and stores a definition. Conflicting redefinitions of
// an existing ID are rejected.
func (c *Catalog) Register(def *item.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	fp := def.Fingerprint()
	if existing, ok := c.prints[def.ID]; ok {
		if existing == fp {
			return nil
		}
		return fmt.Errorf("catalog: conflicting redefinition of %s", def.ID)
	}
	c.defs[def.ID] = def
	c.prints[def.ID] = fp
	c.order = append(c.order, def.ID)
	c.log.Debug("definition registered",
		log.String("id", def.ID), log.String("rarity", def.Rarity.String()))
	return nil
}

// Get returns the definition for an ID.
func (c *Catalog) Get(id string) (*item.Definition, bool) {
	def, ok := c.defs[id]
	return def, ok
}

// Len returns the number of registered definitions.
func (c *Catalog) Len() int { return len(c.order) }

// IDs returns the registered definition IDs in registration order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Spawn creates a runtime instance of the definition with the given
// quantity, clamped to the definition's stack limit.
func (c *Catalog) Spawn(id string, qty int) (*item.Item, error) {
	def, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown definition %s", id)
	}
	return item.New(def, qty), nil
}
