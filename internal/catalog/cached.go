package catalog

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/Simplici0/windowquote/internal/cache"
	"github.com/Simplici0/windowquote/internal/logger"
	"github.com/Simplici0/windowquote/internal/pricing"
)

type snapshotCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Cached serves snapshots from Redis, keyed by catalog version. Every write
// goes to the store first and then drops the cached snapshots. Cache
// failures are logged and fall through to the store.
type Cached struct {
	store *Store
	cache snapshotCache
	ttl   time.Duration
	log   *logger.Logger
}

var _ Catalog = (*Cached)(nil)
var _ Catalog = (*Store)(nil)

func NewCached(store *Store, c snapshotCache, ttl time.Duration, log *logger.Logger) *Cached {
	return &Cached{store: store, cache: c, ttl: ttl, log: log}
}

func snapshotKey(version int64) string {
	return cache.Key(cache.KeyPrefixCatalog, strconv.FormatInt(version, 10))
}

func (c *Cached) Snapshot(ctx context.Context) (*Snapshot, error) {
	version, err := c.store.Version(ctx)
	if err != nil {
		return nil, err
	}
	key := snapshotKey(version)

	var snap Snapshot
	err = c.cache.Get(ctx, key, &snap)
	if err == nil {
		return &snap, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		c.log.WithError(err).WithField("key", key).Warn("catalog cache read failed")
	}

	fresh, err := c.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, snapshotKey(fresh.Version), fresh, c.ttl); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("catalog cache write failed")
	}
	return fresh, nil
}

func (c *Cached) SearchPresets(ctx context.Context, f PresetFilter) ([]Preset, error) {
	return c.store.SearchPresets(ctx, f)
}

func (c *Cached) invalidate(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	if derr := c.cache.DeleteByPrefix(ctx, cache.KeyPrefixCatalog+":"); derr != nil {
		c.log.WithError(derr).Warn("catalog cache invalidation failed")
	}
	return nil
}

func (c *Cached) UpsertProfile(ctx context.Context, p pricing.ProfileSystem) error {
	return c.invalidate(ctx, c.store.UpsertProfile(ctx, p))
}

func (c *Cached) UpsertGlass(ctx context.Context, g pricing.GlassType) error {
	return c.invalidate(ctx, c.store.UpsertGlass(ctx, g))
}

func (c *Cached) UpsertPreset(ctx context.Context, p Preset) error {
	return c.invalidate(ctx, c.store.UpsertPreset(ctx, p))
}

func (c *Cached) UpdateCharges(ctx context.Context, ch pricing.Charges) error {
	return c.invalidate(ctx, c.store.UpdateCharges(ctx, ch))
}

func (c *Cached) UpdateAccessories(ctx context.Context, a pricing.AccessoryPricing) error {
	return c.invalidate(ctx, c.store.UpdateAccessories(ctx, a))
}

func (c *Cached) UpdateSettings(ctx context.Context, s Settings) error {
	return c.invalidate(ctx, c.store.UpdateSettings(ctx, s))
}

func (c *Cached) UpdateCompany(ctx context.Context, co Company) error {
	return c.invalidate(ctx, c.store.UpdateCompany(ctx, co))
}

func (c *Cached) Import(ctx context.Context, r io.Reader, format string) (ImportStats, error) {
	stats, err := c.store.Import(ctx, r, format)
	return stats, c.invalidate(ctx, err)
}
