package cache

import (
	"context"
	"encoding/json"
	"time"

	"handshakeme/internal/domain/service"
	"handshakeme/internal/errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cache:"

// redisStore is the persistent cache tier. Each record carries its own
// absolute expiry; the redis key additionally gets a whole-second TTL so the
// backend physically drops entries the service never touches again.
type redisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore creates a persistent cache tier backed by redis.
func NewRedisStore(client *redis.Client) service.CacheStore {
	return &redisStore{client: client, now: time.Now}
}

func (s *redisStore) Get(ctx context.Context, key string) (*service.CacheRecord, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}

	var record service.CacheRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errors.Wrap(err, "unmarshal cache record")
	}

	// Lazy cleanup: an expired record is deleted on touch and reported as a miss.
	if s.now().UnixMilli() >= record.ExpiresAt {
		if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
			return nil, errors.Wrap(err, "redis delete expired")
		}

		return nil, nil
	}

	return &record, nil
}

func (s *redisStore) Set(ctx context.Context, record *service.CacheRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal cache record")
	}

	// Whole-second TTL for backend-level cleanup, rounded up so the backend
	// never drops a record before its own expiry.
	ttlMs := record.ExpiresAt - s.now().UnixMilli()
	if ttlMs <= 0 {
		return nil
	}
	ttl := time.Duration((ttlMs+999)/1000) * time.Second

	if err := s.client.Set(ctx, redisKeyPrefix+record.Key, raw, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}

	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "redis delete")
	}

	return nil
}
