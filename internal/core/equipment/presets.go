package equipment

// Default humanoid slot and equip-type identifiers.
const (
	SlotHead      = "head"
	SlotChest     = "chest"
	SlotLegs      = "legs"
	SlotFeet      = "feet"
	SlotHands     = "hands"
	SlotMainHand  = "main_hand"
	SlotOffHand   = "off_hand"
	SlotRingLeft  = "ring_left"
	SlotRingRight = "ring_right"
	SlotAmulet    = "amulet"

	TypeHelmet   = "helmet"
	TypeChest    = "chest"
	TypeLeggings = "leggings"
	TypeBoots    = "boots"
	TypeGloves   = "gloves"
	TypeWeapon   = "weapon"
	TypeShield   = "shield"
	TypeRing     = "ring"
	TypeAmulet   = "amulet"
)

// HumanoidPreset returns the default 10-slot humanoid layout: head, chest,
// legs, feet, hands, main hand, off hand, two rings and an amulet.
func HumanoidPreset() []SlotConfig {
	return []SlotConfig{
		{ID: SlotHead, Name: "Head", AcceptedTypes: []string{TypeHelmet}},
		{ID: SlotChest, Name: "Chest", AcceptedTypes: []string{TypeChest}},
		{ID: SlotLegs, Name: "Legs", AcceptedTypes: []string{TypeLeggings}},
		{ID: SlotFeet, Name: "Feet", AcceptedTypes: []string{TypeBoots}},
		{ID: SlotHands, Name: "Hands", AcceptedTypes: []string{TypeGloves}},
		{ID: SlotMainHand, Name: "Main Hand", AcceptedTypes: []string{TypeWeapon}},
		{ID: SlotOffHand, Name: "Off Hand", AcceptedTypes: []string{TypeWeapon, TypeShield}},
		{ID: SlotRingLeft, Name: "Left Ring", AcceptedTypes: []string{TypeRing}},
		{ID: SlotRingRight, Name: "Right Ring", AcceptedTypes: []string{TypeRing}},
		{ID: SlotAmulet, Name: "Amulet", AcceptedTypes: []string{TypeAmulet}},
	}
}
