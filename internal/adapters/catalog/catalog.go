// Package catalog provides the item catalog accessor: a rate-limited HTTP
// client over the manifest service backed by a sqlite snapshot cache.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/pkg/logger"
	"github.com/carver/wishforge/pkg/metrics"
)

const defaultRequestsPerSecond = 25

// Catalog is the item catalog accessor. Open must succeed before any lookup;
// after that all reads are served from the local snapshot and are safe for
// concurrent use.
type Catalog struct {
	client *client
	store  *Store
	logger logger.Logger

	cachePath         string
	requestsPerSecond int
	platformURL       string
	contentURL        string
	httpClient        *http.Client
}

// New creates a Catalog accessor authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		cachePath:         "catalog_cache.db",
		requestsPerSecond: defaultRequestsPerSecond,
		logger:            logger.Get().Named("catalog"),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.client = newClient(apiKey, c.requestsPerSecond)
	if c.platformURL != "" {
		c.client.baseURL = c.platformURL
	}
	if c.contentURL != "" {
		c.client.contentURL = c.contentURL
	}
	if c.httpClient != nil {
		c.client.hc = c.httpClient
	}

	store, err := OpenStore(c.cachePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	c.store = store
	return c, nil
}

// Open ensures a catalog snapshot matching the current manifest version is
// available locally, downloading and rebuilding it when stale. Any failure
// here is fatal for the run.
func (c *Catalog) Open(ctx context.Context) error {
	version, componentPath, err := c.client.manifestInfo(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	stored, err := c.store.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	count, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	if stored == version && count > 0 {
		c.logger.Info(ctx, "catalog snapshot up to date",
			logger.String("version", version),
			logger.Int("items", count),
		)
		metrics.RecordSnapshotHit()
		metrics.UpdateSnapshotItems(count)
		return nil
	}

	c.logger.Info(ctx, "downloading catalog snapshot", logger.String("version", version))
	raw, err := c.client.itemComponent(ctx, componentPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	items := make([]*model.ItemDefinition, 0, len(raw))
	for hashText, entry := range raw {
		hash, err := strconv.ParseUint(hashText, 10, 32)
		if err != nil {
			// Keys are always decimal hashes; skip anything else.
			continue
		}
		if entry.DisplayProperties.Name == "" {
			continue
		}
		items = append(items, &model.ItemDefinition{
			Hash:            uint32(hash),
			Name:            entry.DisplayProperties.Name,
			TypeDisplayName: entry.ItemTypeDisplayName,
			ItemType:        entry.ItemType,
			SubType:         entry.ItemSubType,
			TierTypeName:    entry.Inventory.TierTypeName,
			Description:     entry.DisplayProperties.Description,
		})
	}

	if err := c.store.Replace(ctx, version, items); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	c.logger.Info(ctx, "catalog snapshot rebuilt",
		logger.String("version", version),
		logger.Int("items", len(items)),
	)
	metrics.RecordSnapshotRebuild()
	metrics.UpdateSnapshotItems(len(items))
	return nil
}

// SearchByName returns all cataloged items whose display name contains text,
// case-insensitively.
func (c *Catalog) SearchByName(ctx context.Context, text string) ([]*model.ItemDefinition, error) {
	return c.store.SearchName(ctx, text)
}

// LookupByHash returns the item definition for a catalog hash, or ErrNotFound.
func (c *Catalog) LookupByHash(ctx context.Context, hash uint32) (*model.ItemDefinition, error) {
	return c.store.Lookup(ctx, hash)
}

// Classify reports whether an item is a weapon, a perk, or neither.
func (c *Catalog) Classify(item *model.ItemDefinition) model.ItemClass {
	return Classify(item)
}

// Close releases the snapshot store.
func (c *Catalog) Close() error {
	return c.store.Close()
}
