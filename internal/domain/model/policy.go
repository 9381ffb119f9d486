package model

import "fmt"

// PerkMode controls how strict the roll expansion is for one tier.
type PerkMode int

const (
	// RequireBothColumns keeps only dual-perk combinations.
	RequireBothColumns PerkMode = iota + 1
	// RequireAnyColumn additionally keeps single-perk rolls.
	RequireAnyColumn
	// AllowBare additionally keeps the bare weapon with no perks.
	AllowBare
)

// TierPolicy maps a tier label (S, A, B, ...) to its expansion mode. A weapon
// whose tier is absent from the policy is excluded from output entirely.
type TierPolicy map[string]PerkMode

// ParseTierPolicy converts the config representation (tier -> mode name) into
// a TierPolicy. Recognized mode names: "both", "any", "bare".
func ParseTierPolicy(raw map[string]string) (TierPolicy, error) {
	policy := make(TierPolicy, len(raw))
	for tier, mode := range raw {
		switch mode {
		case "both":
			policy[tier] = RequireBothColumns
		case "any":
			policy[tier] = RequireAnyColumn
		case "bare":
			policy[tier] = AllowBare
		default:
			return nil, fmt.Errorf("tier %q: unknown perk mode %q", tier, mode)
		}
	}
	return policy, nil
}
