package cache

import (
	"context"
	"log/slog"
	"time"

	"handshakeme/config"
	"handshakeme/internal/domain/service"

	"go.uber.org/fx"
)

// twoTierCache implements service.Cache with a bounded memory tier in front
// of a persistent store. Reads prefer memory; writes go persistent-first.
type twoTierCache struct {
	memory *memoryTier
	store  service.CacheStore
	logger *slog.Logger
	now    func() time.Time
}

// Params holds dependencies for the cache service, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Store  service.CacheStore
	Logger *slog.Logger
}

// New creates the two-tier cache service.
func New(params Params) service.Cache {
	return newTwoTier(params.Config.Cache.MemoryMaxEntries, params.Store, params.Logger, time.Now)
}

func newTwoTier(maxEntries int, store service.CacheStore, logger *slog.Logger, now func() time.Time) *twoTierCache {
	return &twoTierCache{
		memory: newMemoryTier(maxEntries, now),
		store:  store,
		logger: logger,
		now:    now,
	}
}

// Get returns the cached value or nil on miss. A store failure degrades to a
// miss so callers never fail a request on a broken cache backend.
func (c *twoTierCache) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := c.memory.get(key); ok {
		return value, nil
	}

	record, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache store read failed, treating as miss",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return nil, nil
	}
	if record == nil {
		return nil, nil
	}

	// Promote into the memory tier for subsequent reads.
	c.memory.set(key, record.Value, time.UnixMilli(record.ExpiresAt))

	return record.Value, nil
}

// Set writes through the persistent tier first, then mirrors into memory.
// Persist failures propagate to the caller.
func (c *twoTierCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now()
	record := &service.CacheRecord{
		Key:       key,
		Value:     value,
		ExpiresAt: now.Add(ttl).UnixMilli(),
		CreatedAt: now.UnixMilli(),
	}

	if err := c.store.Set(ctx, record); err != nil {
		return err
	}

	c.memory.set(key, value, now.Add(ttl))

	return nil
}

// Delete removes the key from both tiers.
func (c *twoTierCache) Delete(ctx context.Context, key string) error {
	c.memory.delete(key)

	return c.store.Delete(ctx, key)
}

// GetOrSet is read-through: on miss the factory runs and its result is
// written through both tiers. Concurrent misses for the same key may all run
// the factory; the duplicate writes are idempotent overwrites.
func (c *twoTierCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, factory func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if value, err := c.Get(ctx, key); err == nil && value != nil {
		return value, nil
	}

	value, err := factory(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		return nil, err
	}

	return value, nil
}
