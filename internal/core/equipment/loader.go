package equipment

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SlotLayout is the on-disk shape of an equipment layout in JSON or YAML.
type SlotLayout struct {
	Slots []SlotConfig `json:"slots" yaml:"slots"`
}

// LoadSlotsJSON loads a slot layout from a JSON reader.
func LoadSlotsJSON(r io.Reader) ([]SlotConfig, error) {
	var layout SlotLayout
	dec := json.NewDecoder(r)
	if err := dec.Decode(&layout); err != nil {
		return nil, err
	}
	return validateLayout(layout)
}

// LoadSlotsYAML loads a slot layout from a YAML reader.
func LoadSlotsYAML(r io.Reader) ([]SlotConfig, error) {
	var layout SlotLayout
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&layout); err != nil {
		return nil, err
	}
	return validateLayout(layout)
}

func validateLayout(layout SlotLayout) ([]SlotConfig, error) {
	seen := make(map[string]struct{}, len(layout.Slots))
	for _, cfg := range layout.Slots {
		if cfg.ID == "" {
			return nil, fmt.Errorf("slot layout: slot with empty id")
		}
		if _, dup := seen[cfg.ID]; dup {
			return nil, fmt.Errorf("slot layout: duplicate slot id %s", cfg.ID)
		}
		seen[cfg.ID] = struct{}{}
	}
	return layout.Slots, nil
}
