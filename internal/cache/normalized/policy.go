// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package normalized implements the client-side entity cache and its merge policy.

Response trees are flattened into one entry per entity, keyed by an [EntityID]
derived from the entity type and its key fields. When the same entity arrives
again, its fields are merged into the existing entry under the per-type
[TypePolicy] table.

Core Responsibility:

  - Identity: Which fields identify each entity type.
  - Merge: Replace-wholesale for plural fields, deep merge for nested objects.
  - Store: Normalized writes, reads, denormalization and field modifiers.
*/
package normalized

import (
	"encoding/json"
	"strings"
)

// # Identity

// EntityID is the cache key of a normalized entity, e.g. `Tag:{"text":"music"}`.
type EntityID string

// RootQuery is the entity that holds the root query fields.
const RootQuery EntityID = "ROOT_QUERY"

// TypenameField carries the GraphQL type name of an object.
const TypenameField = "__typename"

// defaultKeyField identifies types that declare no key fields.
const defaultKeyField = "id"

// rootTypename is the GraphQL type of the root query.
const rootTypename = "Query"

// Ref points at a normalized entity. It encodes as {"__ref": "<id>"}.
type Ref struct {
	ID EntityID `json:"__ref"`
}

// # Policy Types

// FieldContext describes the field being merged.
type FieldContext struct {
	TypeName  string
	FieldName string

	// ReadField reads a field of an entity reference or embedded object.
	ReadField func(field string, from any) (any, bool)
}

// MergeFunc combines the existing and incoming value of a field.
//
// existing is nil when the field is absent. A MergeFunc must be total: it may
// not panic for any combination of inputs.
type MergeFunc func(existing, incoming any, ctx FieldContext) any

// FieldPolicy controls how one field of a type is written.
type FieldPolicy struct {
	Merge MergeFunc
}

// TypePolicy describes identity and merge behavior of one entity type.
type TypePolicy struct {
	// KeyFields identify an entity. Empty means the default "id" key.
	KeyFields []string

	// Merge makes embedded objects of this type merge into the existing value.
	Merge bool

	Fields map[string]FieldPolicy
}

// Policies maps a GraphQL type name to its policy.
type Policies map[string]TypePolicy

// fieldMerge returns the merge function of typename.field, if any.
func (p Policies) fieldMerge(typename, field string) MergeFunc {
	policy, ok := p[typename]
	if !ok {
		return nil
	}
	return policy.Fields[field].Merge
}

/*
Identify computes the cache key of an object of the given type.

Description: Types with declared key fields are keyed by a JSON object of
those fields in declaration order. Other types use the "id" field. The root
query type always maps to [RootQuery].

Parameters:
  - typename: string
  - obj: map[string]any (the raw object)

Returns:
  - EntityID: The cache key
  - bool: false when a key field is missing or null
*/
func (p Policies) Identify(typename string, obj map[string]any) (EntityID, bool) {
	if typename == "" {
		return "", false
	}
	if typename == rootTypename {
		return RootQuery, true
	}

	policy := p[typename]
	if len(policy.KeyFields) == 0 {
		value, ok := obj[defaultKeyField]
		if !ok || value == nil {
			return "", false
		}
		if text, isText := value.(string); isText {
			return EntityID(typename + ":" + text), true
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", false
		}
		return EntityID(typename + ":" + string(encoded)), true
	}

	var builder strings.Builder
	builder.WriteString(typename)
	builder.WriteString(":{")
	for i, field := range policy.KeyFields {
		value, ok := obj[field]
		if !ok || value == nil {
			return "", false
		}
		name, _ := json.Marshal(field)
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", false
		}
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.Write(name)
		builder.WriteByte(':')
		builder.Write(encoded)
	}
	builder.WriteByte('}')
	return EntityID(builder.String()), true
}

// Typename returns the __typename of a raw object.
func Typename(obj map[string]any) string {
	typename, _ := obj[TypenameField].(string)
	return typename
}
