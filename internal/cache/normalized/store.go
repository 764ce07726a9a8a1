// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalized

import (
	"errors"
	"sync"
)

var (
	// ErrMissingTypename is returned when a written object has no __typename.
	ErrMissingTypename = errors.New("normalized: object has no __typename")

	// ErrNotIdentifiable is returned when a fragment lacks its key fields.
	ErrNotIdentifiable = errors.New("normalized: object cannot be identified")

	// ErrEntityNotFound is returned by [Store.Modify] for an unknown entity.
	ErrEntityNotFound = errors.New("normalized: entity not found")
)

// Entity is the stored field set of one normalized entity.
//
// Nested entities are stored as [Ref] values; embedded objects that cannot be
// identified stay inline as map[string]any.
type Entity map[string]any

// Modifier computes the new value of a field. existing is nil when absent.
type Modifier func(existing any, ctx FieldContext) any

// Store is an in-memory normalized entity cache.
//
// All operations are serialized by one mutex, so a write always completes
// before the next one starts. The zero value is not usable; construct one
// with [NewStore].
type Store struct {
	mu       sync.Mutex
	policies Policies
	entities map[EntityID]Entity
}

// NewStore constructs an empty store governed by policies.
func NewStore(policies Policies) *Store {
	return &Store{
		policies: policies,
		entities: make(map[EntityID]Entity),
	}
}

// Policies returns the policy table of the store.
func (s *Store) Policies() Policies {
	return s.policies
}

// # Writes

/*
Write normalizes a response object into the store.

Description: Every nested object with a __typename and resolvable key becomes
its own entry and is replaced in its parent by a [Ref]. Fields of an existing
entry are merged field by field under the policy table.

Parameters:
  - obj: map[string]any (a response object carrying __typename)

Returns:
  - any: A [Ref] for an identifiable object, or the normalized embedded object
  - error: ErrMissingTypename
*/
func (s *Store) Write(obj map[string]any) (any, error) {
	if Typename(obj) == "" {
		return nil, ErrMissingTypename
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.normalize(obj), nil
}

// WriteFragment writes an identifiable object and returns its reference.
func (s *Store) WriteFragment(obj map[string]any) (Ref, error) {
	typename := Typename(obj)
	if typename == "" {
		return Ref{}, ErrMissingTypename
	}
	if _, ok := s.policies.Identify(typename, obj); !ok {
		return Ref{}, ErrNotIdentifiable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ref, _ := s.normalize(obj).(Ref)
	return ref, nil
}

// WriteQuery merges fields into the root query entity.
func (s *Store) WriteQuery(fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj := make(map[string]any, len(fields)+1)
	for field, value := range fields {
		obj[field] = value
	}
	obj[TypenameField] = rootTypename
	s.normalize(obj)
}

// normalize must be called with s.mu held.
func (s *Store) normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		typename := Typename(typed)
		if id, ok := s.policies.Identify(typename, typed); ok {
			s.mergeEntity(id, typename, typed)
			return Ref{ID: id}
		}
		embedded := make(map[string]any, len(typed))
		for field, item := range typed {
			embedded[field] = s.normalize(item)
		}
		return embedded
	case []map[string]any:
		list := make([]any, len(typed))
		for i, item := range typed {
			list[i] = s.normalize(item)
		}
		return list
	case []any:
		list := make([]any, len(typed))
		for i, item := range typed {
			list[i] = s.normalize(item)
		}
		return list
	default:
		return value
	}
}

func (s *Store) mergeEntity(id EntityID, typename string, incoming map[string]any) {
	entity, exists := s.entities[id]
	if !exists {
		entity = make(Entity, len(incoming))
		s.entities[id] = entity
	}

	for field, raw := range incoming {
		value := s.normalize(raw)
		existing, hasExisting := entity[field]
		if !hasExisting {
			existing = nil
		}
		entity[field] = s.mergeField(typename, field, existing, value)
	}
}

// mergeField applies, in order: the field policy, the entity-level merge of
// embedded objects, and finally plain replacement.
func (s *Store) mergeField(typename, field string, existing, incoming any) any {
	ctx := s.fieldContext(typename, field)

	if merge := s.policies.fieldMerge(typename, field); merge != nil {
		return merge(existing, incoming, ctx)
	}

	if incomingObj, ok := incoming.(map[string]any); ok {
		if _, ok := existing.(map[string]any); ok && s.policies[Typename(incomingObj)].Merge {
			return DeepMerge(existing, incoming, ctx)
		}
	}
	return incoming
}

func (s *Store) fieldContext(typename, field string) FieldContext {
	return FieldContext{
		TypeName:  typename,
		FieldName: field,
		ReadField: s.readField,
	}
}

// # Reads

// Read returns a copy of the entity stored under id.
func (s *Store) Read(id EntityID) (Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.entities[id]
	if !ok {
		return nil, false
	}
	return Entity(cloneObject(entity)), true
}

// ReadField reads one field of a [Ref], an [EntityID] or an embedded object.
func (s *Store) ReadField(field string, from any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.readField(field, from)
	return cloneValue(value), ok
}

// readField must be called with s.mu held.
func (s *Store) readField(field string, from any) (any, bool) {
	var fields map[string]any
	switch typed := from.(type) {
	case Ref:
		fields = s.entities[typed.ID]
	case EntityID:
		fields = s.entities[typed]
	case Entity:
		fields = typed
	case map[string]any:
		fields = typed
	}
	if fields == nil {
		return nil, false
	}
	value, ok := fields[field]
	return value, ok
}

// Resolve replaces every [Ref] reachable from value with a copy of its entity.
//
// Dangling references resolve to nil. A reference already being resolved
// higher up the tree is left as a [Ref].
func (s *Store) Resolve(value any) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.resolve(value, make(map[EntityID]bool))
}

func (s *Store) resolve(value any, visiting map[EntityID]bool) any {
	switch typed := value.(type) {
	case Ref:
		if visiting[typed.ID] {
			return typed
		}
		entity, ok := s.entities[typed.ID]
		if !ok {
			return nil
		}
		visiting[typed.ID] = true
		resolved := s.resolveObject(entity, visiting)
		delete(visiting, typed.ID)
		return resolved
	case EntityID:
		return s.resolve(Ref{ID: typed}, visiting)
	case Entity:
		return s.resolveObject(typed, visiting)
	case map[string]any:
		return s.resolveObject(typed, visiting)
	case []any:
		list := make([]any, len(typed))
		for i, item := range typed {
			list[i] = s.resolve(item, visiting)
		}
		return list
	default:
		return value
	}
}

func (s *Store) resolveObject(obj map[string]any, visiting map[EntityID]bool) map[string]any {
	resolved := make(map[string]any, len(obj))
	for field, item := range obj {
		resolved[field] = s.resolve(item, visiting)
	}
	return resolved
}

// # Direct Edits

// Modify rewrites fields of an entity in place.
//
// Modifiers bypass the merge policy. Each receives the current value of its
// field (nil when absent). The root query entity is created on demand; any
// other unknown id returns [ErrEntityNotFound].
func (s *Store) Modify(id EntityID, modifiers map[string]Modifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.entities[id]
	if !ok {
		if id != RootQuery {
			return ErrEntityNotFound
		}
		entity = Entity{TypenameField: rootTypename}
		s.entities[id] = entity
	}

	typename, _ := entity[TypenameField].(string)
	for field, modify := range modifiers {
		entity[field] = modify(entity[field], s.fieldContext(typename, field))
	}
	return nil
}

// Evict removes an entity. It reports whether the entity existed.
func (s *Store) Evict(id EntityID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return false
	}
	delete(s.entities, id)
	return true
}

// Len returns the number of stored entities.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entities)
}
