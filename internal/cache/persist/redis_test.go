// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/agora/internal/cache/normalized"
	"github.com/taibuivan/agora/internal/cache/persist"
	"github.com/taibuivan/agora/internal/platform/apperr"
)

// fakeClient is an in-memory stand-in for Redis.
type fakeClient struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (client *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	if client.err != nil {
		return redis.NewStringResult("", client.err)
	}
	value, ok := client.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (client *fakeClient) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if client.err != nil {
		return redis.NewStatusResult("", client.err)
	}
	client.values[key] = string(value.([]byte))
	client.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (client *fakeClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := client.values[key]; ok {
			delete(client.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRedisPersister_SaveLoad(t *testing.T) {
	client := newFakeClient()
	persister := persist.NewRedisPersister(client, "agora:cache:snapshot", time.Hour, discard)

	source := normalized.NewStore(normalized.DefaultPolicies())
	_, err := source.Write(map[string]any{
		"__typename": "Channel",
		"uniqueName": "cats",
		"Tags":       []any{map[string]any{"__typename": "Tag", "text": "pets"}},
	})
	require.NoError(t, err)

	require.NoError(t, persister.Save(context.Background(), source))
	assert.Equal(t, time.Hour, client.ttls["agora:cache:snapshot"])

	target := normalized.NewStore(normalized.DefaultPolicies())
	require.NoError(t, persister.Load(context.Background(), target))

	assert.Equal(t, source.Snapshot(), target.Snapshot())

	tags, ok := target.ReadField("Tags", normalized.EntityID(`Channel:{"uniqueName":"cats"}`))
	require.True(t, ok)
	assert.Equal(t, []any{normalized.Ref{ID: `Tag:{"text":"pets"}`}}, tags)
}

/*
TestRedisPersister_LoadMissing checks that a missing key maps to NotFound and keeps the store.
*/
func TestRedisPersister_LoadMissing(t *testing.T) {
	persister := persist.NewRedisPersister(newFakeClient(), "missing", 0, discard)

	store := normalized.NewStore(normalized.DefaultPolicies())
	store.WriteQuery(map[string]any{"viewer": "cluse"})

	err := persister.Load(context.Background(), store)
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Equal(t, 1, store.Len())
}

func TestRedisPersister_Errors(t *testing.T) {
	client := newFakeClient()
	persister := persist.NewRedisPersister(client, "key", 0, discard)
	store := normalized.NewStore(normalized.DefaultPolicies())

	client.values["key"] = "{not json"
	err := persister.Load(context.Background(), store)
	assert.ErrorContains(t, err, "cache_snapshot_decode_failed")

	client.err = errors.New("connection refused")
	assert.ErrorContains(t, persister.Save(context.Background(), store), "redis_cache_snapshot_set_failed")
	assert.ErrorContains(t, persister.Load(context.Background(), store), "redis_cache_snapshot_get_failed")

	client.err = nil
	require.NoError(t, persister.Clear(context.Background()))
	_, ok := client.values["key"]
	assert.False(t, ok)
}
