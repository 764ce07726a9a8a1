// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the Agora database so that
// SQL built in repositories never repeats raw identifiers.
package schema

import (
	"strings"

	"github.com/taibuivan/agora/internal/platform/constants"
)

// SearchSavedSearchTable represents the 'search.savedsearch' table
type SearchSavedSearchTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Slug        string
	Channel     string
	Query       string
	Fingerprint string
	CreatedAt   string
}

// SearchSavedSearch is the schema definition for search.savedsearch
var SearchSavedSearch = SearchSavedSearchTable{
	Table:       constants.SchemaSearch + ".savedsearch",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Slug:        "slug",
	Channel:     "channel",
	Query:       "query",
	Fingerprint: "fingerprint",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t SearchSavedSearchTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Slug, t.Channel, t.Query, t.Fingerprint, t.CreatedAt}
}

// ColumnList returns [Columns] joined for a SELECT or INSERT list.
func (t SearchSavedSearchTable) ColumnList() string {
	return strings.Join(t.Columns(), ", ")
}
