package service

import (
	"context"
	"sync"

	"github.com/carver/wishforge/internal/domain/match"
	"github.com/carver/wishforge/internal/domain/model"
)

// matchAll resolves entries concurrently with a bounded worker pool. The
// result preserves entry order with unmatched entries dropped; the matcher's
// candidate cache guarantees identical repeated lookups hit the catalog at
// most once even across workers.
func (s *Service) matchAll(ctx context.Context, matcher *match.Matcher, entries []model.RawEntry) []*model.MatchedWeapon {
	workers := s.workerCount
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	results := make([]*model.MatchedWeapon, len(entries))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				results[idx] = matcher.MatchWeapon(ctx, entries[idx])
			}
		}()
	}

	for i := range entries {
		select {
		case indexes <- i:
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return compact(results)
		}
	}
	close(indexes)
	wg.Wait()

	return compact(results)
}

func compact(results []*model.MatchedWeapon) []*model.MatchedWeapon {
	out := make([]*model.MatchedWeapon, 0, len(results))
	for _, w := range results {
		if w != nil {
			out = append(out, w)
		}
	}
	return out
}
