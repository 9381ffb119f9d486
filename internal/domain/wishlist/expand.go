// Package wishlist expands matched weapons into the set of acceptable roll
// lines and renders the wishlist document.
package wishlist

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/carver/wishforge/internal/domain/model"
)

// Expand produces the output lines for one weapon under the given policy:
// a "<name> - Tier: <tier>" header followed by the lexically sorted,
// duplicate-free roll lines. An empty result excludes the weapon.
//
// The dual-perk cartesian product is generated whenever both columns are
// populated, regardless of policy; looser modes only add less strict lines.
func Expand(w *model.MatchedWeapon, policy model.TierPolicy) []string {
	mode, ok := policy[w.Tier]
	if !ok {
		return nil
	}

	item := strconv.FormatUint(uint64(w.Hash), 10)
	combos := make(map[string]struct{})

	if mode == model.AllowBare {
		combos["item="+item] = struct{}{}
	}

	if mode == model.RequireAnyColumn || mode == model.AllowBare {
		for _, p := range w.PerksColumn1 {
			combos[fmt.Sprintf("item=%s&perks=%d", item, p.Hash)] = struct{}{}
		}
		for _, p := range w.PerksColumn2 {
			combos[fmt.Sprintf("item=%s&perks=%d", item, p.Hash)] = struct{}{}
		}
	}

	if len(w.PerksColumn1) > 0 && len(w.PerksColumn2) > 0 {
		for _, p1 := range w.PerksColumn1 {
			for _, p2 := range w.PerksColumn2 {
				combos[fmt.Sprintf("item=%s&perks=%d,%d", item, p1.Hash, p2.Hash)] = struct{}{}
			}
		}
	}

	if len(combos) == 0 {
		return nil
	}

	lines := make([]string, 0, len(combos)+1)
	lines = append(lines, fmt.Sprintf("%s - Tier: %s", w.Name, w.Tier))
	sorted := make([]string, 0, len(combos))
	for line := range combos {
		sorted = append(sorted, line)
	}
	sort.Strings(sorted)
	return append(lines, sorted...)
}
