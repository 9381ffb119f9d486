package match

import (
	"sort"
	"sync"

	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/pkg/metrics"
)

// cacheKey identifies one memoized lookup.
type cacheKey struct {
	name  string
	class model.ItemClass
}

// cacheEntry holds the at-most-once population state for one key. Concurrent
// callers for the same key share a single in-flight search.
type cacheEntry struct {
	once   sync.Once
	result []model.MatchCandidate
}

// resultCache memoizes candidate lookups for the lifetime of a run.
type resultCache struct {
	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[cacheKey]*cacheEntry)}
}

// get returns the cached result for (name, class), populating it with fn on
// first use. The first caller wins; later callers block until population
// completes and then share the same slice. Callers must not mutate it.
func (c *resultCache) get(name string, class model.ItemClass, fn func() []model.MatchCandidate) []model.MatchCandidate {
	key := cacheKey{name: name, class: class}

	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	if ok {
		metrics.RecordMatchCacheHit()
	}
	entry.once.Do(func() {
		entry.result = fn()
	})
	return entry.result
}

// missingSet accumulates unmatched names across the run. Appends may come
// from concurrent weapon matches; reads produce sorted snapshots.
type missingSet struct {
	mu          sync.Mutex
	weaponNames map[string]struct{}
	perkNames   map[string]struct{}
}

func newMissingSet() *missingSet {
	return &missingSet{
		weaponNames: make(map[string]struct{}),
		perkNames:   make(map[string]struct{}),
	}
}

func (s *missingSet) addWeapon(name string) {
	s.mu.Lock()
	s.weaponNames[name] = struct{}{}
	s.mu.Unlock()
}

func (s *missingSet) addPerk(name string) {
	s.mu.Lock()
	s.perkNames[name] = struct{}{}
	s.mu.Unlock()
}

func (s *missingSet) weapons() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.weaponNames)
}

func (s *missingSet) perks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.perkNames)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
