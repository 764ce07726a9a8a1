// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package savedsearch

import "context"

// # Saved Search Data Access

// Repository defines the data access contract for saved searches.
//
// Every method is scoped to an owner; a row owned by someone else is
// reported as not found.
type Repository interface {

	/*
		List returns a page of the owner's saved searches, newest first.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*SavedSearch: Page of saved searches
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, ownerID string, limit, offset int) ([]*SavedSearch, int, error)

	/*
		FindByID retrieves one saved search.

		Returns:
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, ownerID, id string) (*SavedSearch, error)

	// FindByFingerprint returns dberr.ErrNotFound when the owner has no
	// saved search with that fingerprint.
	FindByFingerprint(context context.Context, ownerID, fingerprint string) (*SavedSearch, error)

	/*
		Create persists a new saved search and fills CreatedAt.

		Returns:
		  - error: dberr.ErrDuplicate on a fingerprint collision
	*/
	Create(context context.Context, saved *SavedSearch) error

	// Delete removes one saved search. It returns dberr.ErrNotFound when
	// nothing was deleted.
	Delete(context context.Context, ownerID, id string) error
}
