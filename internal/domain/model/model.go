// Package model contains domain models passed between layers.
package model

// ItemClass is the coarse classification of a catalog item.
type ItemClass int

const (
	ClassOther ItemClass = iota
	ClassWeapon
	ClassPerk
)

// String returns a readable name for logging.
func (c ItemClass) String() string {
	switch c {
	case ClassWeapon:
		return "weapon"
	case ClassPerk:
		return "perk"
	default:
		return "other"
	}
}

// ItemDefinition is one catalog (manifest) entry. Instances are owned by the
// catalog snapshot and must not be mutated after lookup.
type ItemDefinition struct {
	Hash            uint32 // stable catalog id
	Name            string // display name
	TypeDisplayName string // e.g. "Hand Cannon", "Trait"
	ItemType        int    // catalog item type code
	SubType         int    // catalog item subtype code
	TierTypeName    string // e.g. "Legendary"; may be empty
	Description     string // display description; may be empty
}

// RawEntry is one curated spreadsheet row after parsing.
type RawEntry struct {
	Name      string
	Tier      string
	ColumnOne []string // perk names from the first curated column
	ColumnTwo []string // perk names from the second curated column
}

// Perks returns the combined perk list, column one first. Downstream matching
// splits this combined list in half by count, not by original column.
func (e RawEntry) Perks() []string {
	out := make([]string, 0, len(e.ColumnOne)+len(e.ColumnTwo))
	out = append(out, e.ColumnOne...)
	out = append(out, e.ColumnTwo...)
	return out
}

// MatchCandidate pairs a catalog item with its score against a raw name.
type MatchCandidate struct {
	Item       *ItemDefinition
	ExactMatch bool
	Similarity float64 // in [0,1]
}

// MatchedPerk is a resolved perk on a matched weapon.
type MatchedPerk struct {
	Name        string
	Hash        uint32
	Description string
}

// MatchedWeapon is the result of successfully matching one RawEntry.
type MatchedWeapon struct {
	Name            string
	Hash            uint32
	TypeDisplayName string
	Tier            string
	PerksColumn1    []MatchedPerk
	PerksColumn2    []MatchedPerk
}
