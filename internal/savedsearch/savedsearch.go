// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package savedsearch lets a signed-in user keep named event filters.

A saved search stores the canonical query string of a filter, not the
filter state itself, so it can be opened as a link and decoded again with
the current codec.

# Core Responsibility

  - Canonicalization: Queries are decoded and re-encoded before storage.
  - Identity: A BLAKE2b fingerprint of channel and canonical query makes
    duplicates per owner detectable.
  - Ownership: Every read and write is scoped to the owner.
*/
package savedsearch

import "time"

// # Core Entities

// SavedSearch is a named, canonicalized event filter owned by one user.
type SavedSearch struct {
	ID          string    `json:"id"` // UUIDv7
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Channel     string    `json:"channel,omitempty"`
	Query       string    `json:"query"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Inputs

// CreateInput is the request body of a new saved search.
type CreateInput struct {
	Name    string `json:"name" validate:"required,max=80"`
	Query   string `json:"query" validate:"max=8192"`
	Channel string `json:"channel" validate:"omitempty,max=100"`
}

// # Field Identifiers

const (
	FieldName    = "name"
	FieldQuery   = "query"
	FieldChannel = "channel"
)

// fallbackSlug is used when a name has no ASCII letters or digits.
const fallbackSlug = "search"
