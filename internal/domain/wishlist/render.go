package wishlist

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/pkg/metrics"
)

// Header carries the metadata written as the comment block at the top of the
// wishlist file.
type Header struct {
	GeneratedAt time.Time
	RunID       string
	WeaponCount int
	FileName    string
}

func (h Header) render() string {
	var b strings.Builder
	b.WriteString("// Wishlist generated by wishforge\n")
	fmt.Fprintf(&b, "// Generated on: %s\n", h.GeneratedAt.Format("2006-01-02 15:04:05"))
	if h.RunID != "" {
		fmt.Fprintf(&b, "// Run: %s\n", h.RunID)
	}
	fmt.Fprintf(&b, "// Weapons processed: %d\n", h.WeaponCount)
	fmt.Fprintf(&b, "// Format: %s\n", h.FileName)
	b.WriteString("\n")
	return b.String()
}

// Document renders the complete wishlist. Weapons are ordered by (type, name)
// so the output is byte-identical across runs, then expanded under the policy;
// weapons expanding to nothing are dropped. Blocks are separated by a blank
// line.
func Document(weapons []*model.MatchedWeapon, policy model.TierPolicy, header Header) string {
	ordered := make([]*model.MatchedWeapon, len(weapons))
	copy(ordered, weapons)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].TypeDisplayName != ordered[j].TypeDisplayName {
			return ordered[i].TypeDisplayName < ordered[j].TypeDisplayName
		}
		return ordered[i].Name < ordered[j].Name
	})

	header.WeaponCount = len(ordered)

	blocks := make([]string, 0, len(ordered))
	for _, w := range ordered {
		lines := Expand(w, policy)
		if len(lines) == 0 {
			continue
		}
		metrics.RecordRollLines(len(lines) - 1)
		blocks = append(blocks, strings.Join(lines, "\n")+"\n")
	}

	return header.render() + strings.Join(blocks, "\n")
}
