// Package service defines domain-level service contracts implemented by the
// infrastructure layer.
package service

import (
	"context"
	"time"
)

// Cache is a two-tier read-through/write-through cache. Values are stored as
// raw JSON so callers decide their own shapes.
type Cache interface {
	// Get returns the cached value or nil on miss. Backend failures degrade
	// to a miss; callers cannot distinguish the two.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the value through the persistent tier first, then mirrors it
	// into memory. Persist failures are returned to the caller.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the key from both tiers.
	Delete(ctx context.Context, key string) error

	// GetOrSet returns the cached value, invoking factory on miss and writing
	// the result through. Concurrent misses for the same key may each invoke
	// factory; writes are idempotent overwrites.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, factory func(ctx context.Context) ([]byte, error)) ([]byte, error)
}

// CacheRecord is one persistent-tier entry. Expiry is tracked as an absolute
// timestamp; the store additionally derives a coarser whole-second TTL for
// backend-level automatic cleanup.
type CacheRecord struct {
	Key       string `json:"key"`
	Value     []byte `json:"value"`
	ExpiresAt int64  `json:"expiresAt"` // epoch milliseconds
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
}

// CacheStore is the persistent tier behind the in-process memory tier.
type CacheStore interface {
	// Get returns the record for key, or (nil, nil) on miss. Implementations
	// lazily delete records found past expiry and report them as a miss.
	Get(ctx context.Context, key string) (*CacheRecord, error)

	// Set writes a record with the given absolute expiry.
	Set(ctx context.Context, record *CacheRecord) error

	// Delete removes the record for key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
