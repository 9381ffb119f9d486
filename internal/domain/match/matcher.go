// Package match finds catalog entries for noisy curated names and resolves
// whole spreadsheet rows into matched weapons with perk hashes.
package match

import (
	"context"
	"sort"

	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/internal/domain/normalize"
	"github.com/carver/wishforge/pkg/logger"
	"github.com/carver/wishforge/pkg/metrics"
)

// Default similarity thresholds. Perks need a stricter cutoff since many
// share generic words ("rounds", "targeting").
const (
	defaultWeaponThreshold = 0.8
	defaultPerkThreshold   = 0.9
)

// Catalog is the read-only view of the item catalog the matcher needs.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// SearchByName returns all items whose display name contains text,
	// case-insensitively.
	SearchByName(ctx context.Context, text string) ([]*model.ItemDefinition, error)

	// Classify reports whether an item is a weapon, a perk, or neither.
	Classify(item *model.ItemDefinition) model.ItemClass
}

// Matcher ranks catalog candidates for raw names and memoizes results per
// (name, class) for the lifetime of a run.
type Matcher struct {
	catalog Catalog

	weaponThreshold float64
	perkThreshold   float64

	cache   *resultCache
	missing *missingSet

	logger logger.Logger
}

// New creates a Matcher backed by the given catalog.
func New(catalog Catalog, opts ...Option) *Matcher {
	m := &Matcher{
		catalog:         catalog,
		weaponThreshold: defaultWeaponThreshold,
		perkThreshold:   defaultPerkThreshold,
		cache:           newResultCache(),
		missing:         newMissingSet(),
		logger:          logger.Get().Named("match"),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// FindCandidates returns the ranked catalog candidates for a raw name,
// filtered to the wanted class. An empty result means "no match" and is not
// an error. Results are cached; repeated lookups of the same name and class
// never re-query the catalog.
func (m *Matcher) FindCandidates(ctx context.Context, rawName string, class model.ItemClass) []model.MatchCandidate {
	return m.cache.get(rawName, class, func() []model.MatchCandidate {
		return m.search(ctx, rawName, class)
	})
}

// search performs the uncached variant fan-out, classification filter,
// scoring and ranking.
func (m *Matcher) search(ctx context.Context, rawName string, class model.ItemClass) []model.MatchCandidate {
	unique := make(map[uint32]*model.ItemDefinition)

	for _, variant := range normalize.SearchVariants(rawName) {
		metrics.RecordSearchQuery()
		items, err := m.catalog.SearchByName(ctx, variant)
		if err != nil {
			// Transient fetch failures degrade to "no result" for this
			// variant; the run continues.
			m.logger.Warn(ctx, "catalog search failed",
				logger.String("query", variant),
				logger.Error(err),
			)
			continue
		}
		for _, item := range items {
			if m.catalog.Classify(item) != class {
				continue
			}
			unique[item.Hash] = item
		}
	}

	threshold := m.weaponThreshold
	if class == model.ClassPerk {
		threshold = m.perkThreshold
	}

	candidates := make([]model.MatchCandidate, 0, len(unique))
	for _, item := range unique {
		exact, similarity := normalize.Compare(rawName, item.Name)
		if !exact && similarity <= threshold {
			continue
		}
		candidates = append(candidates, model.MatchCandidate{
			Item:       item,
			ExactMatch: exact,
			Similarity: similarity,
		})
	}

	// Exact matches first, then by similarity; hash breaks ties so that
	// ranking is deterministic across runs.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ExactMatch != b.ExactMatch {
			return a.ExactMatch
		}
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		return a.Item.Hash < b.Item.Hash
	})

	return candidates
}

// MatchWeapon resolves one curated entry into a MatchedWeapon. It returns nil
// when the weapon itself cannot be matched; unresolved perks are recorded and
// omitted without failing the weapon.
func (m *Matcher) MatchWeapon(ctx context.Context, entry model.RawEntry) *model.MatchedWeapon {
	candidates := m.FindCandidates(ctx, entry.Name, model.ClassWeapon)
	if len(candidates) == 0 {
		m.logger.Info(ctx, "no catalog match for weapon", logger.String("name", entry.Name))
		m.missing.addWeapon(entry.Name)
		metrics.RecordWeaponMissing()
		return nil
	}

	chosen := candidates[0].Item
	m.logger.Debug(ctx, "weapon matched",
		logger.String("name", entry.Name),
		logger.String("catalog_name", chosen.Name),
		logger.Uint32("hash", chosen.Hash),
	)

	// The combined perk list is bisected by count: the first half feeds
	// output column 1, the rest column 2. This intentionally ignores the
	// original column membership for compatibility with consumers of the
	// historical output.
	perks := entry.Perks()
	half := len(perks) / 2

	matched := &model.MatchedWeapon{
		Name:            entry.Name,
		Hash:            chosen.Hash,
		TypeDisplayName: chosen.TypeDisplayName,
		Tier:            entry.Tier,
		PerksColumn1:    m.resolvePerks(ctx, perks[:half]),
		PerksColumn2:    m.resolvePerks(ctx, perks[half:]),
	}
	metrics.RecordWeaponMatched()
	return matched
}

func (m *Matcher) resolvePerks(ctx context.Context, names []string) []model.MatchedPerk {
	resolved := make([]model.MatchedPerk, 0, len(names))
	for _, name := range names {
		candidates := m.FindCandidates(ctx, name, model.ClassPerk)
		if len(candidates) == 0 {
			m.logger.Info(ctx, "no catalog match for perk", logger.String("name", name))
			m.missing.addPerk(name)
			metrics.RecordPerkMissing()
			continue
		}
		item := candidates[0].Item
		m.logger.Debug(ctx, "perk matched",
			logger.String("name", name),
			logger.String("catalog_name", item.Name),
			logger.Uint32("hash", item.Hash),
		)
		resolved = append(resolved, model.MatchedPerk{
			Name:        name,
			Hash:        item.Hash,
			Description: item.Description,
		})
		metrics.RecordPerkMatched()
	}
	return resolved
}

// MissingWeapons returns the sorted set of weapon names that produced no
// candidates so far.
func (m *Matcher) MissingWeapons() []string { return m.missing.weapons() }

// MissingPerks returns the sorted set of perk names that produced no
// candidates so far.
func (m *Matcher) MissingPerks() []string { return m.missing.perks() }
