// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalized

// ReplaceList is the merge function for plural fields.
//
// The incoming list replaces the existing one. A nil incoming value yields an
// empty list, as does a value that is not a list.
func ReplaceList(_, incoming any, _ FieldContext) any {
	list, ok := incoming.([]any)
	if !ok || list == nil {
		return []any{}
	}
	return cloneList(list)
}

// DeepMerge merges incoming into existing recursively.
//
// Fields present in incoming win; fields only in existing are kept. When
// either side is not an embedded object (for example an entity [Ref]), the
// incoming value wins unless it is nil.
func DeepMerge(existing, incoming any, ctx FieldContext) any {
	if incoming == nil {
		return existing
	}

	incomingObj, ok := incoming.(map[string]any)
	if !ok {
		return incoming
	}
	existingObj, ok := existing.(map[string]any)
	if !ok {
		return cloneObject(incomingObj)
	}

	merged := cloneObject(existingObj)
	for field, value := range incomingObj {
		merged[field] = DeepMerge(merged[field], value, ctx)
	}
	return merged
}

// # Copy Helpers

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneObject(typed)
	case Entity:
		return Entity(cloneObject(typed))
	case []any:
		return cloneList(typed)
	default:
		return value
	}
}

func cloneObject(obj map[string]any) map[string]any {
	if obj == nil {
		return nil
	}
	clone := make(map[string]any, len(obj))
	for field, value := range obj {
		clone[field] = cloneValue(value)
	}
	return clone
}

func cloneList(list []any) []any {
	if list == nil {
		return nil
	}
	clone := make([]any, len(list))
	for i, value := range list {
		clone[i] = cloneValue(value)
	}
	return clone
}
