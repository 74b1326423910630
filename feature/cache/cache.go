package cache

import (
	"context"
	"fmt"

	"puzzled-pint-map/core/geocode"

	"go.uber.org/zap"
)

// Store persists the whole address cache.
type Store interface {
	// Load returns every cached entry. A store that was never written returns an empty map.
	Load(ctx context.Context) (map[string]geocode.Location, error)
	// Save persists every entry.
	Save(ctx context.Context, entries map[string]geocode.Location) error
}

// AddressCache maps a normalized full address to the location it resolved to.
// Entries are never evicted: once an address is cached it is never sent to the
// geocoding provider again.
type AddressCache struct {
	store        Store
	entries      map[string]geocode.Location
	flushOnStore bool
	dirty        bool
	logger       *zap.Logger
}

// New creates an empty cache bound to a store. Call Load before use.
func New(store Store, flush string, logger *zap.Logger) *AddressCache {
	return &AddressCache{
		store:        store,
		entries:      make(map[string]geocode.Location),
		flushOnStore: flush == FlushStore,
		logger:       logger,
	}
}

// Load replaces the in-memory entries with the persisted ones.
func (c *AddressCache) Load(ctx context.Context) error {
	entries, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("cache: failed to load: %w", err)
	}
	if entries == nil {
		entries = make(map[string]geocode.Location)
	}
	c.entries = entries
	c.dirty = false
	c.logger.Debug("Loaded address cache", zap.Int("entries", len(entries)))
	return nil
}

// Lookup returns the cached location for a full address.
func (c *AddressCache) Lookup(fullAddress string) (geocode.Location, bool) {
	loc, ok := c.entries[fullAddress]
	return loc, ok
}

// Store records a resolution. With the "store" flush policy it is persisted immediately.
func (c *AddressCache) Store(ctx context.Context, fullAddress string, loc geocode.Location) error {
	c.entries[fullAddress] = loc
	c.dirty = true
	if c.flushOnStore {
		return c.Save(ctx)
	}
	return nil
}

// Save persists the cache if anything changed since the last load or save.
func (c *AddressCache) Save(ctx context.Context) error {
	if !c.dirty {
		return nil
	}
	if err := c.store.Save(ctx, c.entries); err != nil {
		return fmt.Errorf("cache: failed to save: %w", err)
	}
	c.dirty = false
	c.logger.Debug("Saved address cache", zap.Int("entries", len(c.entries)))
	return nil
}

// Len returns the number of cached addresses.
func (c *AddressCache) Len() int {
	return len(c.entries)
}
