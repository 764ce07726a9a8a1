// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalized

import "encoding/json"

// refField is the JSON key of an encoded [Ref].
const refField = "__ref"

// Snapshot is a detached copy of every stored entity.
//
// It round-trips through encoding/json: references encode as {"__ref": id}
// and are turned back into [Ref] values on decode.
type Snapshot map[EntityID]Entity

// UnmarshalJSON decodes a snapshot and restores its references.
func (snapshot *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[EntityID]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := make(Snapshot, len(raw))
	for id, fields := range raw {
		entity := make(Entity, len(fields))
		for field, value := range fields {
			entity[field] = restoreRefs(value)
		}
		decoded[id] = entity
	}
	*snapshot = decoded
	return nil
}

func restoreRefs(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		if id, ok := typed[refField].(string); ok && len(typed) == 1 {
			return Ref{ID: EntityID(id)}
		}
		for field, item := range typed {
			typed[field] = restoreRefs(item)
		}
		return typed
	case []any:
		for i, item := range typed {
			typed[i] = restoreRefs(item)
		}
		return typed
	default:
		return value
	}
}

// Snapshot returns a deep copy of the store contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(Snapshot, len(s.entities))
	for id, entity := range s.entities {
		snapshot[id] = Entity(cloneObject(entity))
	}
	return snapshot
}

// Restore replaces the store contents with a copy of snapshot.
func (s *Store) Restore(snapshot Snapshot) {
	entities := make(map[EntityID]Entity, len(snapshot))
	for id, entity := range snapshot {
		entities[id] = Entity(cloneObject(entity))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities = entities
}
