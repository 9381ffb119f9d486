// Package service runs the reconciliation pipeline: curated entries in,
// wishlist file out.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/carver/wishforge/internal/domain/match"
	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/internal/domain/wishlist"
	"github.com/carver/wishforge/pkg/logger"
)

const defaultWorkerCount = 4

// Source lists the curated spreadsheet entries for one run.
type Source interface {
	ListEntries(ctx context.Context) ([]model.RawEntry, error)
}

// Catalog is the item catalog accessor the pipeline needs: snapshot
// acquisition plus the read-only view the matcher consumes.
type Catalog interface {
	match.Catalog

	// Open acquires the catalog snapshot. Failure is fatal for the run.
	Open(ctx context.Context) error
}

// Sink persists the rendered wishlist document.
type Sink interface {
	Write(ctx context.Context, content string) error
}

// Service wires the source, catalog, matcher and sink into one run.
type Service struct {
	source  Source
	catalog Catalog
	sink    Sink

	policy      model.TierPolicy
	workerCount int
	outputName  string
	matchOpts   []match.Option

	runID  string
	logger logger.Logger
}

// New creates a Service with the given options. Source, catalog and sink
// are required; Run reports their absence as a configuration problem.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: defaultWorkerCount,
		policy:      model.TierPolicy{},
		runID:       uuid.NewString(),
		logger:      logger.Get().Named("service"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one full reconciliation: snapshot the catalog, list curated
// entries, match them, expand rolls under the tier policy and write the
// wishlist. Per-entry match failures are absorbed into the missing-name
// report; only snapshot, source and sink failures abort the run.
func (s *Service) Run(ctx context.Context) error {
	if s.source == nil || s.catalog == nil || s.sink == nil {
		return fmt.Errorf("service is missing a source, catalog or sink")
	}

	start := time.Now()
	s.logger.Info(ctx, "run starting", logger.String("run_id", s.runID))

	if err := s.catalog.Open(ctx); err != nil {
		return fmt.Errorf("acquire catalog snapshot: %w", err)
	}

	entries, err := s.source.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("list curated entries: %w", err)
	}
	s.logger.Info(ctx, "curated entries loaded", logger.Int("entries", len(entries)))

	matcher := match.New(s.catalog, s.matchOpts...)
	matched := s.matchAll(ctx, matcher, entries)

	s.report(ctx, len(entries), matched, matcher)

	header := wishlist.Header{
		GeneratedAt: time.Now(),
		RunID:       s.runID,
		FileName:    s.outputName,
	}
	content := wishlist.Document(matched, s.policy, header)

	if err := s.sink.Write(ctx, content); err != nil {
		return fmt.Errorf("write wishlist: %w", err)
	}

	s.logger.Info(ctx, "run finished",
		logger.String("run_id", s.runID),
		logger.String("elapsed", time.Since(start).String()),
	)
	return nil
}

// report logs the end-of-run matching summary, including the sorted
// missing-name lists.
func (s *Service) report(ctx context.Context, processed int, matched []*model.MatchedWeapon, matcher *match.Matcher) {
	missingWeapons := matcher.MissingWeapons()
	missingPerks := matcher.MissingPerks()

	s.logger.Info(ctx, "matching summary",
		logger.Int("processed", processed),
		logger.Int("matched", len(matched)),
		logger.Int("missing_weapons", len(missingWeapons)),
		logger.Int("missing_perks", len(missingPerks)),
	)
	for _, name := range missingWeapons {
		s.logger.Info(ctx, "missing weapon", logger.String("name", name))
	}
	for _, name := range missingPerks {
		s.logger.Info(ctx, "missing perk", logger.String("name", name))
	}
}

// outputName derives the header's format name from an output path.
func outputName(path string) string {
	return filepath.Base(path)
}
