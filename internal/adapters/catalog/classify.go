package catalog

import (
	"strings"

	"github.com/carver/wishforge/internal/domain/model"
)

// Catalog item type codes.
const (
	itemTypeWeapon     = 3
	itemTypeMod        = 19
	itemTypeTalentGrid = 20
)

// weaponSubTypes enumerates every known weapon subtype code.
var weaponSubTypes = map[int]string{
	6:  "Auto Rifle",
	7:  "Hand Cannon",
	8:  "Pulse Rifle",
	9:  "Scout Rifle",
	10: "Fusion Rifle",
	11: "Sniper Rifle",
	12: "Shotgun",
	13: "Machine Gun",
	14: "Rocket Launcher",
	17: "Submachine Gun",
	18: "Linear Fusion Rifle",
	19: "Grenade Launcher",
	20: "Trace Rifle",
	21: "Bow",
	22: "Glaive",
	23: "Sword",
	24: "Special Grenade Launcher",
	25: "Heavy Grenade Launcher",
	26: "Stasis Auto Rifle",
	27: "Stasis Hand Cannon",
	28: "Stasis Pulse Rifle",
	29: "Stasis Scout Rifle",
	30: "Stasis Fusion Rifle",
	31: "Stasis Sniper Rifle",
	32: "Stasis Shotgun",
	33: "Stasis Machine Gun",
	34: "Stasis Rocket Launcher",
	35: "Stasis Submachine Gun",
	36: "Stasis Linear Fusion Rifle",
	37: "Stasis Grenade Launcher",
	38: "Stasis Trace Rifle",
	39: "Stasis Bow",
	40: "Stasis Glaive",
	41: "Strand Auto Rifle",
	42: "Strand Hand Cannon",
	43: "Strand Pulse Rifle",
	44: "Strand Scout Rifle",
	45: "Strand Fusion Rifle",
	46: "Strand Sniper Rifle",
	47: "Strand Shotgun",
	48: "Strand Machine Gun",
	49: "Strand Rocket Launcher",
	50: "Strand Submachine Gun",
	51: "Strand Linear Fusion Rifle",
	52: "Strand Grenade Launcher",
	53: "Strand Trace Rifle",
	54: "Strand Bow",
	55: "Strand Glaive",
}

// weaponKeywords is the display-type fallback used for items whose subtype
// code is unknown.
var weaponKeywords = []string{
	"rifle", "cannon", "launcher", "sword", "shotgun", "bow", "glaive", "smg",
}

// perkContextKeywords mark a mod/talent-grid description as weapon-related.
var perkContextKeywords = []string{
	"weapon", "rounds", "magazine", "reload", "precision", "damage",
	"final blow", "kills", "defeating", "precision hits", "burst",
}

// Classify reports whether an item is a weapon, a perk, or neither. Weapons
// take precedence.
func Classify(item *model.ItemDefinition) model.ItemClass {
	if isWeapon(item) {
		return model.ClassWeapon
	}
	if isPerk(item) {
		return model.ClassPerk
	}
	return model.ClassOther
}

func isWeapon(item *model.ItemDefinition) bool {
	display := strings.ToLower(item.TypeDisplayName)

	if item.ItemType == itemTypeWeapon {
		if _, ok := weaponSubTypes[item.SubType]; ok {
			return true
		}
		// Unknown subtype code; fall back to the display type name.
		for _, name := range weaponSubTypes {
			if strings.Contains(display, strings.ToLower(name)) {
				return true
			}
		}
	}

	for _, keyword := range weaponKeywords {
		if strings.Contains(display, keyword) {
			return true
		}
	}
	return false
}

func isPerk(item *model.ItemDefinition) bool {
	if item.TypeDisplayName == "Trait" {
		return true
	}

	if item.ItemType != itemTypeMod && item.ItemType != itemTypeTalentGrid {
		return false
	}

	// Mods and talent grids cover far more than weapon perks; require a
	// weapon-context keyword in the description.
	desc := strings.ToLower(item.Description)
	for _, keyword := range perkContextKeywords {
		if strings.Contains(desc, keyword) {
			return true
		}
	}
	return false
}
