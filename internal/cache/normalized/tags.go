// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package normalized

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

const (
	tagTypename  = "Tag"
	tagTextField = "text"
)

/*
AttachTags adds tags to a list field of an entity.

Description: Each tag is written as its own Tag entity. Tags whose text is
already present in the field are skipped. The result is the new tag
references followed by the existing ones, existing order preserved. Unlike the
replace policy of plural fields, this accumulates.

Parameters:
  - store: *Store
  - id: EntityID (owner of the field, e.g. a Discussion or RootQuery)
  - field: string (e.g. "Tags")
  - tags: []map[string]any (tag objects carrying at least "text")

Returns:
  - error: Write or modify failures
*/
func AttachTags(store *Store, id EntityID, field string, tags []map[string]any) error {
	refs := make([]Ref, 0, len(tags))
	for _, tag := range tags {
		obj := maps.Clone(tag)
		if obj == nil {
			obj = map[string]any{}
		}
		if Typename(obj) == "" {
			obj[TypenameField] = tagTypename
		}
		ref, err := store.WriteFragment(obj)
		if err != nil {
			return fmt.Errorf("attach_tag_failed: %w", err)
		}
		refs = append(refs, ref)
	}

	return store.Modify(id, map[string]Modifier{
		field: func(existing any, ctx FieldContext) any {
			existingRefs, _ := existing.([]any)

			// A tag without text is identified by its reference.
			identityOf := func(item any) any {
				if text, found := ctx.ReadField(tagTextField, item); found {
					return text
				}
				return item
			}
			sameAs := func(identity any) func(any) bool {
				return func(item any) bool { return reflect.DeepEqual(identityOf(item), identity) }
			}

			added := make([]any, 0, len(refs))
			for _, ref := range refs {
				identity := identityOf(ref)
				if slices.ContainsFunc(existingRefs, sameAs(identity)) || slices.ContainsFunc(added, sameAs(identity)) {
					continue
				}
				added = append(added, ref)
			}

			return append(added, existingRefs...)
		},
	})
}
