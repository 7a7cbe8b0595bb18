package loadout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridquest/gridquest/internal/core/equipment"
	"github.com/gridquest/gridquest/internal/core/events"
	"github.com/gridquest/gridquest/internal/core/events/bus"
	"github.com/gridquest/gridquest/internal/core/item"
)

func weapon(id string) *item.Item {
	return item.New(&item.Definition{
		ID: id, Name: id, Width: 1, Height: 2, MaxStack: 1, EquipSlot: equipment.TypeWeapon,
	}, 1)
}

func helmet() *item.Item {
	return item.New(&item.Definition{
		ID: "iron_helmet", Name: "Iron Helmet", Width: 2, Height: 2, MaxStack: 1,
		EquipSlot: equipment.TypeHelmet,
	}, 1)
}

func potion(qty int, effects item.Effects) *item.Item {
	return item.New(&item.Definition{
		ID: "potion", Name: "Potion", Width: 1, Height: 1, MaxStack: 5,
		Consumable: true, Effects: effects,
	}, qty)
}

func newHero(opts ...Option) *Component {
	base := []Option{
		WithGrid(4, 4),
		WithSlots([]equipment.SlotConfig{
			{ID: equipment.SlotMainHand, Name: "Main Hand", AcceptedTypes: []string{equipment.TypeWeapon}},
			{ID: equipment.SlotOffHand, Name: "Off Hand", AcceptedTypes: []string{equipment.TypeWeapon}},
			{ID: equipment.SlotHead, Name: "Head", AcceptedTypes: []string{equipment.TypeHelmet}},
		}),
	}
	return New(append(base, opts...)...)
}

func TestAddAndRemove(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")

	require.True(t, hero.AddItem(sword))
	assert.Equal(t, 1, hero.Inventory().Count())
	require.True(t, hero.RemoveItem(sword))
	assert.True(t, hero.Inventory().IsEmpty())
	assert.False(t, hero.RemoveItem(sword), "already gone")
	assert.False(t, hero.RemoveItem(nil))
}

func TestEquipFromGrid(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")
	require.True(t, hero.AddItem(sword))

	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))
	assert.True(t, hero.Inventory().IsEmpty(), "grid cells freed")
	assert.Same(t, sword, hero.Equipment().GetEquipped(equipment.SlotMainHand))
	assert.NoError(t, hero.Validate())
}

func TestEquipPicksFirstCompatibleSlot(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")
	axe := weapon("axe")
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.AddItem(axe))

	require.True(t, hero.EquipItem(sword, ""))
	require.True(t, hero.EquipItem(axe, ""))
	assert.Same(t, sword, hero.Equipment().GetEquipped(equipment.SlotMainHand))
	assert.Same(t, axe, hero.Equipment().GetEquipped(equipment.SlotOffHand),
		"second weapon falls through to the next compatible slot")
}

func TestEquipDisplacedReturnsToGrid(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")
	axe := weapon("axe")
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.AddItem(axe))

	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))
	require.True(t, hero.EquipItem(axe, equipment.SlotMainHand))

	assert.Same(t, axe, hero.Equipment().GetEquipped(equipment.SlotMainHand))
	assert.Equal(t, item.LocGrid, sword.Location().Kind, "displaced sword back in the grid")
	assert.Equal(t, 1, hero.Inventory().Count())
	assert.NoError(t, hero.Validate())
}

func TestEquipSwapReusesFreedCells(t *testing.T) {
	hero := New(
		WithGrid(1, 2),
		WithSlots([]equipment.SlotConfig{
			{ID: equipment.SlotMainHand, Name: "Main Hand", AcceptedTypes: []string{equipment.TypeWeapon}},
		}),
	)
	sword := weapon("sword")
	axe := weapon("axe")
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))
	require.True(t, hero.AddItem(axe))

	// The axe fills the only 1×2 region, but equipping it frees those cells
	// first, so the displaced sword slots straight into them.
	require.True(t, hero.EquipItem(axe, equipment.SlotMainHand))
	assert.Same(t, axe, hero.Equipment().GetEquipped(equipment.SlotMainHand))
	assert.Same(t, sword, hero.Inventory().ItemAt(0, 0))
	assert.NoError(t, hero.Validate())
}

func TestEquipRollbackWhenDisplacedDoesNotFit(t *testing.T) {
	hero := New(
		WithGrid(1, 2),
		WithSlots([]equipment.SlotConfig{
			{ID: equipment.SlotMainHand, Name: "Main Hand", AcceptedTypes: []string{equipment.TypeWeapon}},
		}),
	)
	greatsword := weapon("greatsword") // 1×2
	dagger := item.New(&item.Definition{
		ID: "dagger", Name: "Dagger", Width: 1, Height: 1, MaxStack: 1,
		EquipSlot: equipment.TypeWeapon,
	}, 1)
	rock := item.New(&item.Definition{ID: "rock", Name: "Rock", Width: 1, Height: 1, MaxStack: 1}, 1)

	require.True(t, hero.AddItem(greatsword))
	require.True(t, hero.EquipItem(greatsword, equipment.SlotMainHand))
	require.True(t, hero.AddItem(dagger))
	require.True(t, hero.AddItem(rock))

	// Equipping the dagger frees only one cell; the displaced greatsword
	// needs two contiguous cells and the rock blocks them, so the whole swap
	// must unwind.
	assert.False(t, hero.EquipItem(dagger, equipment.SlotMainHand))
	assert.Same(t, greatsword, hero.Equipment().GetEquipped(equipment.SlotMainHand))
	assert.Same(t, dagger, hero.Inventory().ItemAt(0, 0))
	assert.Same(t, rock, hero.Inventory().ItemAt(0, 1))
	assert.NoError(t, hero.Validate())
}

func TestEquipRollbackFromUnplacedOrigin(t *testing.T) {
	hero := New(
		WithGrid(1, 2),
		WithSlots([]equipment.SlotConfig{
			{ID: equipment.SlotMainHand, Name: "Main Hand", AcceptedTypes: []string{equipment.TypeWeapon}},
		}),
	)
	sword := weapon("sword")
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))
	require.True(t, hero.AddItem(weapon("spare")))

	// A loose axe equipped straight from the world cannot displace the sword
	// while the grid is full.
	axe := weapon("axe")
	assert.False(t, hero.EquipItem(axe, equipment.SlotMainHand))
	assert.Same(t, sword, hero.Equipment().GetEquipped(equipment.SlotMainHand))
	assert.Equal(t, item.LocUnplaced, axe.Location().Kind)
	assert.NoError(t, hero.Validate())
}

func TestEquipMoveBetweenSlots(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))

	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand), "same slot is a no-op")
	require.True(t, hero.EquipItem(sword, equipment.SlotOffHand))
	assert.Nil(t, hero.Equipment().GetEquipped(equipment.SlotMainHand))
	assert.Same(t, sword, hero.Equipment().GetEquipped(equipment.SlotOffHand))
	assert.NoError(t, hero.Validate())
}

func TestEquipRejected(t *testing.T) {
	hero := newHero()
	hat := helmet()
	require.True(t, hero.AddItem(hat))

	assert.False(t, hero.EquipItem(hat, equipment.SlotMainHand), "wrong slot type")
	assert.False(t, hero.EquipItem(hat, "belt"), "unknown slot")
	assert.Equal(t, item.LocGrid, hat.Location().Kind, "failed equip leaves the grid alone")

	bare := New(WithGrid(4, 4))
	rock := item.New(&item.Definition{ID: "rock", Name: "Rock", Width: 1, Height: 1, MaxStack: 1}, 1)
	require.True(t, bare.AddItem(rock))
	assert.False(t, bare.EquipItem(rock, equipment.SlotMainHand), "no equipment attached")
}

func TestUnequipIntoGrid(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))

	require.True(t, hero.UnequipItem(equipment.SlotMainHand))
	assert.Nil(t, hero.Equipment().GetEquipped(equipment.SlotMainHand))
	assert.Equal(t, item.LocGrid, sword.Location().Kind)
	assert.False(t, hero.UnequipItem(equipment.SlotMainHand), "slot now empty")
	assert.NoError(t, hero.Validate())
}

func TestUnequipFailsWhenInventoryFull(t *testing.T) {
	hero := New(
		WithGrid(2, 2),
		WithSlots([]equipment.SlotConfig{
			{ID: equipment.SlotHead, Name: "Head", AcceptedTypes: []string{equipment.TypeHelmet}},
		}),
	)
	hat := helmet()
	require.True(t, hero.AddItem(hat))
	require.True(t, hero.EquipItem(hat, equipment.SlotHead))

	filler := item.New(&item.Definition{ID: "rock", Name: "Rock", Width: 1, Height: 1, MaxStack: 1}, 1)
	require.True(t, hero.AddItem(filler))

	// The 2×2 helmet no longer fits around the rock.
	assert.False(t, hero.UnequipItem(equipment.SlotHead))
	assert.Same(t, hat, hero.Equipment().GetEquipped(equipment.SlotHead), "helmet stays worn")
	assert.Equal(t, 1, hero.Inventory().Count())
	assert.NoError(t, hero.Validate())
}

func TestUseConsumable(t *testing.T) {
	hero := newHero()
	var uses int
	elixir := potion(2, item.Effects{
		OnUse: func(ctx *item.EffectContext) { uses++ },
	})
	require.True(t, hero.AddItem(elixir))

	require.True(t, hero.UseItem(elixir))
	assert.Equal(t, 1, elixir.Quantity())
	assert.Equal(t, 1, hero.Inventory().Count())

	require.True(t, hero.UseItem(elixir))
	assert.Equal(t, 2, uses)
	assert.True(t, hero.Inventory().IsEmpty(), "empty stack is discarded")
	assert.False(t, hero.UseItem(elixir))
	assert.False(t, hero.UseItem(nil))
}

func TestEffectHooksAndTarget(t *testing.T) {
	type actor struct{ name string }
	me := &actor{name: "hero"}

	var calls []string
	var seenTarget any
	sword := item.New(&item.Definition{
		ID: "sword", Name: "Sword", Width: 1, Height: 2, MaxStack: 1,
		EquipSlot: equipment.TypeWeapon,
		Effects: item.Effects{
			OnPickup:  func(ctx *item.EffectContext) { calls = append(calls, "pickup") },
			OnEquip:   func(ctx *item.EffectContext) { calls = append(calls, "equip"); seenTarget = ctx.Target },
			OnUnequip: func(ctx *item.EffectContext) { calls = append(calls, "unequip") },
			OnDrop:    func(ctx *item.EffectContext) { calls = append(calls, "drop") },
		},
	}, 1)

	hero := newHero(WithTarget(me))
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))
	require.True(t, hero.UnequipItem(equipment.SlotMainHand))
	require.True(t, hero.RemoveItem(sword))

	assert.Equal(t, []string{"pickup", "equip", "unequip", "drop"}, calls)
	assert.Same(t, me, seenTarget)
}

func TestFindItemSearchesBothContainers(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))
	require.True(t, hero.AddItem(potion(1, item.Effects{})))

	assert.True(t, sword.Same(hero.FindItem("sword")), "worn items are searched too")
	assert.NotNil(t, hero.FindItem("potion"))
	assert.Nil(t, hero.FindItem("shield"))

	all := hero.AllItems()
	require.Len(t, all, 2)
}

func TestSharedBusSeesBothContainers(t *testing.T) {
	hero := newHero()
	var types []string
	for _, et := range []string{
		events.TypeItemAdded, events.TypeItemRemoved, events.TypeEquipped,
	} {
		_, err := hero.Bus().Subscribe(et, func(e bus.Event) error {
			types = append(types, e.Type())
			return nil
		})
		require.NoError(t, err)
	}

	sword := weapon("sword")
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.EquipItem(sword, equipment.SlotMainHand))

	assert.Equal(t, []string{
		events.TypeItemAdded, events.TypeItemRemoved, events.TypeEquipped,
	}, types)
}

func TestValidateCatchesSharedInstance(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")
	require.True(t, hero.AddItem(sword))

	// Equip through the inner registry directly, bypassing the component's
	// grid removal, to corrupt the exclusivity invariant.
	require.True(t, hero.Equipment().Equip(sword, equipment.SlotMainHand).Equipped())
	assert.Error(t, hero.Validate())
}

func TestCloneIsDetached(t *testing.T) {
	hero := newHero()
	sword := weapon("sword")
	hat := helmet()
	require.True(t, hero.AddItem(sword))
	require.True(t, hero.AddItem(hat))
	require.True(t, hero.EquipItem(hat, equipment.SlotHead))

	cp, ok := hero.Clone().(*Component)
	require.True(t, ok)
	require.NoError(t, cp.Validate())
	assert.Equal(t, 1, cp.Inventory().Count())
	require.NotNil(t, cp.Equipment().GetEquipped(equipment.SlotHead))

	require.True(t, hero.RemoveItem(sword))
	assert.Equal(t, 1, cp.Inventory().Count(), "clone unaffected by the original")
}

func TestComponentIdentity(t *testing.T) {
	hero := newHero()
	assert.Equal(t, ComponentTypeID, hero.TypeID())
	assert.Equal(t, "loadout", hero.TypeName())
}
