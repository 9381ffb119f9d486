// Package metrics provides Prometheus metrics for the wishforge pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for a run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Catalog access
	catalogRequests       prometheus.Counter
	catalogRequestErrors  prometheus.Counter
	catalogRequestLatency prometheus.Histogram
	snapshotHits          prometheus.Counter
	snapshotRebuilds      prometheus.Counter
	snapshotItems         prometheus.Gauge

	// Matching
	searchQueries  prometheus.Counter
	matchCacheHits prometheus.Counter
	weaponsMatched prometheus.Counter
	weaponsMissing prometheus.Counter
	perksMatched   prometheus.Counter
	perksMissing   prometheus.Counter

	// Output
	rollLines prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wishforge",
		subsystem:        "run",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.catalogRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_requests_total",
		Help:      "Total number of HTTP requests issued to the item catalog",
	})
	m.catalogRequestErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_request_errors_total",
		Help:      "Total number of failed catalog requests",
	})
	m.catalogRequestLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_request_latency_milliseconds",
		Help:      "Histogram of catalog request latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.snapshotHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_hits_total",
		Help:      "Runs that reused an already cached catalog snapshot",
	})
	m.snapshotRebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuilds_total",
		Help:      "Runs that downloaded and rebuilt the catalog snapshot",
	})
	m.snapshotItems = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_items",
		Help:      "Number of item definitions in the catalog snapshot",
	})

	m.searchQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_queries_total",
		Help:      "Total number of catalog name searches, one per variant",
	})
	m.matchCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_hits_total",
		Help:      "Candidate lookups answered from the per-run memo cache",
	})
	m.weaponsMatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "weapons_matched_total",
		Help:      "Curated weapons successfully resolved to a catalog hash",
	})
	m.weaponsMissing = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "weapons_missing_total",
		Help:      "Curated weapons with no acceptable catalog candidate",
	})
	m.perksMatched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "perks_matched_total",
		Help:      "Curated perks successfully resolved to a catalog hash",
	})
	m.perksMissing = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "perks_missing_total",
		Help:      "Curated perks with no acceptable catalog candidate",
	})

	m.rollLines = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roll_lines_total",
		Help:      "Roll lines written to the wishlist",
	})
}

// Package-level helpers operating on the global manager.

func RecordCatalogRequest()      { globalManager.catalogRequests.Inc() }
func RecordCatalogRequestError() { globalManager.catalogRequestErrors.Inc() }

// RecordCatalogRequestLatency records one catalog request latency in milliseconds.
func RecordCatalogRequestLatency(ms float64) { globalManager.catalogRequestLatency.Observe(ms) }

func RecordSnapshotHit()     { globalManager.snapshotHits.Inc() }
func RecordSnapshotRebuild() { globalManager.snapshotRebuilds.Inc() }

// UpdateSnapshotItems sets the current snapshot size.
func UpdateSnapshotItems(n int) { globalManager.snapshotItems.Set(float64(n)) }

func RecordSearchQuery()   { globalManager.searchQueries.Inc() }
func RecordMatchCacheHit() { globalManager.matchCacheHits.Inc() }
func RecordWeaponMatched() { globalManager.weaponsMatched.Inc() }
func RecordWeaponMissing() { globalManager.weaponsMissing.Inc() }
func RecordPerkMatched()   { globalManager.perksMatched.Inc() }
func RecordPerkMissing()   { globalManager.perksMissing.Inc() }

// RecordRollLines adds the number of roll lines emitted for one weapon block.
func RecordRollLines(n int) { globalManager.rollLines.Add(float64(n)) }
