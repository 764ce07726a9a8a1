// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalized_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/agora/internal/cache/normalized"
)

func newStore() *normalized.Store {
	return normalized.NewStore(normalized.DefaultPolicies())
}

func tag(text string) map[string]any {
	return map[string]any{"__typename": "Tag", "text": text}
}

func event(id string, tags ...string) map[string]any {
	list := make([]any, len(tags))
	for i, text := range tags {
		list[i] = tag(text)
	}
	return map[string]any{"__typename": "Event", "id": id, "Tags": list}
}

func tagRef(text string) normalized.Ref {
	return normalized.Ref{ID: normalized.EntityID(`Tag:{"text":"` + text + `"}`)}
}

/*
TestStore_ReplaceOnWrite verifies that plural fields are replaced, not concatenated.
*/
func TestStore_ReplaceOnWrite(t *testing.T) {
	store := newStore()

	_, err := store.Write(event("e1", "A", "B"))
	require.NoError(t, err)
	_, err = store.Write(event("e1", "C"))
	require.NoError(t, err)

	tags, ok := store.ReadField("Tags", normalized.EntityID("Event:{\"id\":\"e1\"}"))
	require.True(t, ok)
	assert.Equal(t, []any{tagRef("C")}, tags)
}

/*
TestStore_ReplaceOnWriteNullList checks that a null plural field becomes empty.
*/
func TestStore_ReplaceOnWriteNullList(t *testing.T) {
	store := newStore()

	ref, err := store.Write(event("e1", "A"))
	require.NoError(t, err)
	_, err = store.Write(map[string]any{"__typename": "Event", "id": "e1", "Tags": nil})
	require.NoError(t, err)

	tags, ok := store.ReadField("Tags", ref)
	require.True(t, ok)
	assert.Equal(t, []any{}, tags)
}

/*
TestStore_EntityMergeKeepsFields verifies that later writes keep unrelated fields.
*/
func TestStore_EntityMergeKeepsFields(t *testing.T) {
	store := newStore()

	_, err := store.Write(map[string]any{"__typename": "Channel", "uniqueName": "cats", "displayName": "Cats"})
	require.NoError(t, err)
	ref, err := store.Write(map[string]any{"__typename": "Channel", "uniqueName": "cats", "description": "All cats"})
	require.NoError(t, err)

	assert.Equal(t, normalized.Ref{ID: `Channel:{"uniqueName":"cats"}`}, ref)

	entity, ok := store.Read(`Channel:{"uniqueName":"cats"}`)
	require.True(t, ok)
	assert.Equal(t, "Cats", entity["displayName"])
	assert.Equal(t, "All cats", entity["description"])
}

/*
TestStore_DeepMergeEmbedded tests the deep merge of an embedded (non-identifiable) object.
*/
func TestStore_DeepMergeEmbedded(t *testing.T) {
	store := newStore()

	first := map[string]any{
		"__typename": "Discussion",
		"id":         "d1",
		"Author":     map[string]any{"__typename": "ModerationProfile", "displayName": "mod", "stats": map[string]any{"a": 1.0}},
	}
	second := map[string]any{
		"__typename": "Discussion",
		"id":         "d1",
		"Author":     map[string]any{"__typename": "ModerationProfile", "stats": map[string]any{"b": 2.0}},
	}

	_, err := store.Write(first)
	require.NoError(t, err)
	ref, err := store.Write(second)
	require.NoError(t, err)

	author, ok := store.ReadField("Author", ref)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"__typename":  "ModerationProfile",
		"displayName": "mod",
		"stats":       map[string]any{"a": 1.0, "b": 2.0},
	}, author)
}

/*
TestStore_UnpolicedEmbeddedReplaced checks that embedded objects without a merge policy are replaced.
*/
func TestStore_UnpolicedEmbeddedReplaced(t *testing.T) {
	store := newStore()

	_, err := store.Write(map[string]any{"__typename": "Event", "id": "e1", "location": map[string]any{"lat": 1.0, "lng": 2.0}})
	require.NoError(t, err)
	ref, err := store.Write(map[string]any{"__typename": "Event", "id": "e1", "location": map[string]any{"lat": 3.0}})
	require.NoError(t, err)

	location, _ := store.ReadField("location", ref)
	assert.Equal(t, map[string]any{"lat": 3.0}, location)
}

/*
TestStore_DefaultIDKey tests that DiscussionChannel falls back to the "id" key.
*/
func TestStore_DefaultIDKey(t *testing.T) {
	store := newStore()

	ref, err := store.Write(map[string]any{"__typename": "DiscussionChannel", "id": "dc1", "channelUniqueName": "cats"})
	require.NoError(t, err)
	assert.Equal(t, normalized.Ref{ID: "DiscussionChannel:dc1"}, ref)

	embedded, err := store.Write(map[string]any{"__typename": "DiscussionChannel", "channelUniqueName": "cats"})
	require.NoError(t, err)
	assert.IsType(t, map[string]any{}, embedded)
}

/*
TestStore_WriteErrors tests the write error paths.
*/
func TestStore_WriteErrors(t *testing.T) {
	store := newStore()

	_, err := store.Write(map[string]any{"id": "x"})
	assert.ErrorIs(t, err, normalized.ErrMissingTypename)

	_, err = store.WriteFragment(map[string]any{"__typename": "Tag"})
	assert.ErrorIs(t, err, normalized.ErrNotIdentifiable)

	err = store.Modify("Event:missing", nil)
	assert.ErrorIs(t, err, normalized.ErrEntityNotFound)
}

/*
TestStore_ResolveAndQuery tests root query writes and denormalization.
*/
func TestStore_ResolveAndQuery(t *testing.T) {
	store := newStore()

	store.WriteQuery(map[string]any{"events": []any{event("e1", "music")}})

	events, ok := store.ReadField("events", normalized.RootQuery)
	require.True(t, ok)

	resolved := store.Resolve(events)
	assert.Equal(t, []any{map[string]any{
		"__typename": "Event",
		"id":         "e1",
		"Tags":       []any{map[string]any{"__typename": "Tag", "text": "music"}},
	}}, resolved)

	assert.True(t, store.Evict(tagRef("music").ID))
	assert.False(t, store.Evict(tagRef("music").ID))
	assert.Equal(t, []any{nil}, store.Resolve(normalized.EntityID(`Event:{"id":"e1"}`)).(map[string]any)["Tags"])
}

/*
TestStore_ResolveCycle checks that self-referencing entities terminate.
*/
func TestStore_ResolveCycle(t *testing.T) {
	store := newStore()

	ref, err := store.Write(map[string]any{
		"__typename": "User",
		"username":   "cluse",
		"Comments": []any{map[string]any{
			"__typename":    "Comment",
			"id":            "c1",
			"CommentAuthor": map[string]any{"__typename": "User", "username": "cluse"},
		}},
	})
	require.NoError(t, err)

	resolved := store.Resolve(ref).(map[string]any)
	comment := resolved["Comments"].([]any)[0].(map[string]any)
	assert.Equal(t, ref, comment["CommentAuthor"])
}

/*
TestStore_SnapshotJSON verifies that a snapshot survives a JSON round trip.
*/
func TestStore_SnapshotJSON(t *testing.T) {
	store := newStore()
	_, err := store.Write(event("e1", "music", "trivia"))
	require.NoError(t, err)

	encoded, err := json.Marshal(store.Snapshot())
	require.NoError(t, err)

	var decoded normalized.Snapshot
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	restored := newStore()
	restored.Restore(decoded)

	assert.Equal(t, store.Snapshot(), restored.Snapshot())
	assert.Equal(t, 3, restored.Len())
}

/*
TestStore_ConcurrentWrites checks that concurrent writers leave a consistent entry.
*/
func TestStore_ConcurrentWrites(t *testing.T) {
	store := newStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Write(event("e1", "A", "B"))
		}()
	}
	wg.Wait()

	tags, _ := store.ReadField("Tags", normalized.EntityID(`Event:{"id":"e1"}`))
	assert.Equal(t, []any{tagRef("A"), tagRef("B")}, tags)
}
