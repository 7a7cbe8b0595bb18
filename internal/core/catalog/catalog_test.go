package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridquest/gridquest/internal/core/item"
)

func potionDef() *item.Definition {
	return &item.Definition{
		ID: "potion", Name: "Potion", Width: 1, Height: 1, MaxStack: 5, Consumable: true,
	}
}

func TestRegisterAndSpawn(t *testing.T) {
	cat := New()
	require.NoError(t, cat.Register(potionDef()))

	def, ok := cat.Get("potion")
	require.True(t, ok)
	assert.Equal(t, "Potion", def.Name)

	it, err := cat.Spawn("potion", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, it.Quantity())
	assert.Same(t, def, it.Definition(), "instances share the registered definition")

	clamped, err := cat.Spawn("potion", 99)
	require.NoError(t, err)
	assert.Equal(t, 5, clamped.Quantity())

	_, err = cat.Spawn("unknown", 1)
	assert.Error(t, err)
}

func TestRegisterRejectsInvalid(t *testing.T) {
	cat := New()
	assert.Error(t, cat.Register(&item.Definition{Name: "Nameless"}), "missing id")
	assert.Error(t, cat.Register(&item.Definition{ID: "flat", Name: "Flat", Width: 0, Height: 1, MaxStack: 1}))
	assert.Equal(t, 0, cat.Len())
}

func TestRegisterConflictDetection(t *testing.T) {
	cat := New()
	require.NoError(t, cat.Register(potionDef()))
	require.NoError(t, cat.Register(potionDef()), "identical redefinition is a no-op")
	assert.Equal(t, 1, cat.Len())

	bigger := potionDef()
	bigger.MaxStack = 20
	assert.Error(t, cat.Register(bigger), "conflicting redefinition")

	def, _ := cat.Get("potion")
	assert.Equal(t, 5, def.MaxStack, "original definition kept")
}

func TestIDsRegistrationOrder(t *testing.T) {
	cat := New()
	for _, id := range []string{"sword", "potion", "shield"} {
		require.NoError(t, cat.Register(&item.Definition{ID: id, Name: id, Width: 1, Height: 1, MaxStack: 1}))
	}
	assert.Equal(t, []string{"sword", "potion", "shield"}, cat.IDs())
}

const packYAML = `
items:
  - id: health_potion
    name: Health Potion
    max_stack: 10
    consumable: true
    rarity: uncommon
    stats:
      heal: 25
  - id: iron_sword
    name: Iron Sword
    width: 1
    height: 3
    equip_slot: weapon
    rarity: rare
    stats:
      damage: 12
`

func TestLoadYAML(t *testing.T) {
	cat := New()
	require.NoError(t, cat.LoadYAML(strings.NewReader(packYAML)))
	require.Equal(t, 2, cat.Len())

	potion, ok := cat.Get("health_potion")
	require.True(t, ok)
	assert.Equal(t, 1, potion.Width, "omitted footprint defaults to 1×1")
	assert.Equal(t, 10, potion.MaxStack)
	assert.True(t, potion.Consumable)
	assert.Equal(t, item.RarityUncommon, potion.Rarity)
	assert.Equal(t, 25.0, potion.Stats["heal"])

	sword, ok := cat.Get("iron_sword")
	require.True(t, ok)
	assert.Equal(t, 3, sword.Height)
	assert.Equal(t, 1, sword.MaxStack, "omitted stack limit defaults to 1")
	assert.Equal(t, "weapon", sword.EquipSlot)
}

func TestLoadJSON(t *testing.T) {
	raw := `{"items":[{"id":"gold","name":"Gold Coin","max_stack":100,"rarity":"mythic"}]}`
	cat := New()
	require.NoError(t, cat.LoadJSON(strings.NewReader(raw)))

	gold, ok := cat.Get("gold")
	require.True(t, ok)
	assert.Equal(t, 100, gold.MaxStack)
	assert.Equal(t, item.RarityCommon, gold.Rarity, "unknown rarity falls back to common")
}

func TestLoadRejectsBadPacks(t *testing.T) {
	cat := New()
	assert.Error(t, cat.LoadYAML(strings.NewReader("items:\n  - name: No ID\n")))
	assert.Error(t, cat.LoadJSON(strings.NewReader("{not json")))

	// A pack conflicting with an already-registered ID fails partway; earlier
	// entries of the pack stay registered.
	require.NoError(t, cat.Register(potionDef()))
	conflict := `{"items":[{"id":"gold","name":"Gold"},{"id":"potion","name":"Potion","max_stack":50}]}`
	assert.Error(t, cat.LoadJSON(strings.NewReader(conflict)))
	assert.Equal(t, []string{"potion", "gold"}, cat.IDs())
}
