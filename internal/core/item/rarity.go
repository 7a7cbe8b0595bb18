package item

import "strings"

// Rarity grades item definitions for presentation layers. It carries no
// gameplay semantics inside the framework.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityToString = map[Rarity]string{
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
}

var rarityFromString = map[string]Rarity{
	"common":    RarityCommon,
	"uncommon":  RarityUncommon,
	"rare":      RarityRare,
	"epic":      RarityEpic,
	"legendary": RarityLegendary,
}

func (r Rarity) String() string {
	if s, ok := rarityToString[r]; ok {
		return s
	}
	return "common"
}

// ParseRarity maps a config string to a Rarity. Unknown or empty strings
// fall back to common.
func ParseRarity(s string) Rarity {
	if r, ok := rarityFromString[strings.ToLower(s)]; ok {
		return r
	}
	return RarityCommon
}
