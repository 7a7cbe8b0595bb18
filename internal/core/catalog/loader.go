package catalog

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gridquest/gridquest/internal/core/item"
)

// Config is the on-disk shape of an item content pack in JSON or YAML.
type Config struct {
	Items []ItemConfig `json:"items" yaml:"items"`
}

// ItemConfig describes one definition. Omitted footprint dimensions and
// stack limits default to 1.
type ItemConfig struct {
	ID         string             `json:"id" yaml:"id"`
	Name       string             `json:"name" yaml:"name"`
	Width      int                `json:"width,omitempty" yaml:"width,omitempty"`
	Height     int                `json:"height,omitempty" yaml:"height,omitempty"`
	MaxStack   int                `json:"max_stack,omitempty" yaml:"max_stack,omitempty"`
	Rarity     string             `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	EquipSlot  string             `json:"equip_slot,omitempty" yaml:"equip_slot,omitempty"`
	Consumable bool               `json:"consumable,omitempty" yaml:"consumable,omitempty"`
	Stats      map[string]float64 `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// Definition converts the config entry into a runtime definition. Effect
// hooks are code, not content; callers attach them after loading when
// needed.
func (ic ItemConfig) Definition() *item.Definition {
	def := &item.Definition{
		ID:         ic.ID,
		Name:       ic.Name,
		Width:      ic.Width,
		Height:     ic.Height,
		MaxStack:   ic.MaxStack,
		Rarity:     item.ParseRarity(ic.Rarity),
		EquipSlot:  ic.EquipSlot,
		Consumable: ic.Consumable,
		Stats:      ic.Stats,
	}
	if def.Width < 1 {
		def.Width = 1
	}
	if def.Height < 1 {
		def.Height = 1
	}
	if def.MaxStack < 1 {
		def.MaxStack = 1
	}
	return def
}

// LoadJSON registers every definition from a JSON content pack.
func (c *Catalog) LoadJSON(r io.Reader) error {
	var cfg Config
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return err
	}
	return c.loadConfig(cfg)
}

// LoadYAML registers every definition from a YAML content pack.
func (c *Catalog) LoadYAML(r io.Reader) error {
	var cfg Config
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return err
	}
	return c.loadConfig(cfg)
}

func (c *Catalog) loadConfig(cfg Config) error {
	for _, ic := range cfg.Items {
		if err := c.Register(ic.Definition()); err != nil {
			return err
		}
	}
	return nil
}
