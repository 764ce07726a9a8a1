// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package persist saves and restores normalized cache snapshots.

A snapshot is the JSON encoding of [normalized.Snapshot], stored under a single
Redis key with a TTL so a restarted process can warm its cache.
*/
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/agora/internal/cache/normalized"
	"github.com/taibuivan/agora/internal/platform/apperr"
)

// Client is the subset of [redis.Cmdable] used by the persister.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisPersister stores one snapshot under a fixed key.
type RedisPersister struct {
	client Client
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisPersister constructs a persister. A zero ttl keeps the key forever.
func NewRedisPersister(client Client, key string, ttl time.Duration, logger *slog.Logger) *RedisPersister {
	return &RedisPersister{client: client, key: key, ttl: ttl, logger: logger}
}

/*
Save writes the current store contents.

Parameters:
  - context: context.Context
  - store: *normalized.Store

Returns:
  - error: Encoding or storage failures
*/
func (persister *RedisPersister) Save(context context.Context, store *normalized.Store) error {
	snapshot := store.Snapshot()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("cache_snapshot_encode_failed: %w", err)
	}

	if err := persister.client.Set(context, persister.key, payload, persister.ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_snapshot_set_failed: %w", err)
	}

	persister.logger.Debug("cache snapshot saved",
		slog.String("key", persister.key),
		slog.Int("entities", len(snapshot)),
		slog.Int("bytes", len(payload)),
	)
	return nil
}

/*
Load restores the store from the saved snapshot.

Description: Returns apperr.NotFound if no snapshot is stored; the store is
left untouched in that case and on any decode failure.

Parameters:
  - context: context.Context
  - store: *normalized.Store

Returns:
  - error: apperr.NotFound, decoding or connectivity errors
*/
func (persister *RedisPersister) Load(context context.Context, store *normalized.Store) error {
	payload, err := persister.client.Get(context, persister.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperr.NotFound("Cache snapshot")
		}
		return fmt.Errorf("redis_cache_snapshot_get_failed: %w", err)
	}

	var snapshot normalized.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return fmt.Errorf("cache_snapshot_decode_failed: %w", err)
	}

	store.Restore(snapshot)

	persister.logger.Info("cache snapshot restored",
		slog.String("key", persister.key),
		slog.Int("entities", len(snapshot)),
	)
	return nil
}

// Clear deletes the saved snapshot.
func (persister *RedisPersister) Clear(context context.Context) error {
	if err := persister.client.Del(context, persister.key).Err(); err != nil {
		return fmt.Errorf("redis_cache_snapshot_delete_failed: %w", err)
	}
	return nil
}
