// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package savedsearch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/agora/internal/platform/database/schema"
	"github.com/taibuivan/agora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed saved-search store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var table = schema.SearchSavedSearch

// scanSavedSearch reads the columns of [schema.SearchSavedSearchTable.Columns] in order.
func scanSavedSearch(row pgx.Row, saved *SavedSearch, extra ...any) error {
	targets := []any{
		&saved.ID, &saved.OwnerID, &saved.Name, &saved.Slug,
		&saved.Channel, &saved.Query, &saved.Fingerprint, &saved.CreatedAt,
	}
	return row.Scan(append(targets, extra...)...)
}

/*
List returns a page of saved searches for one owner.

Description: Uses COUNT(*) OVER() so the total comes back with the page.
*/
func (repository *PostgresRepository) List(context context.Context, ownerID string, limit, offset int) ([]*SavedSearch, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT $2 OFFSET $3
	`, table.ColumnList(), table.Table, table.OwnerID, table.CreatedAt, table.ID)

	rows, err := repository.db.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_saved_searches")
	}
	defer rows.Close()

	searches := make([]*SavedSearch, 0, limit)
	var total int
	for rows.Next() {
		saved := &SavedSearch{}
		if err := scanSavedSearch(rows, saved, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_saved_search")
		}
		searches = append(searches, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_saved_searches")
	}

	return searches, total, nil
}

// FindByID retrieves a saved search by primary key within the owner's rows.
func (repository *PostgresRepository) FindByID(context context.Context, ownerID, id string) (*SavedSearch, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		table.ColumnList(), table.Table, table.OwnerID, table.ID)

	saved := &SavedSearch{}
	if err := scanSavedSearch(repository.db.QueryRow(context, query, ownerID, id), saved); err != nil {
		return nil, dberr.Wrap(err, "get_saved_search")
	}
	return saved, nil
}

// FindByFingerprint retrieves the owner's saved search with the given fingerprint.
func (repository *PostgresRepository) FindByFingerprint(context context.Context, ownerID, fingerprint string) (*SavedSearch, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		table.ColumnList(), table.Table, table.OwnerID, table.Fingerprint)

	saved := &SavedSearch{}
	if err := scanSavedSearch(repository.db.QueryRow(context, query, ownerID, fingerprint), saved); err != nil {
		return nil, dberr.Wrap(err, "get_saved_search_by_fingerprint")
	}
	return saved, nil
}

/*
Create inserts a new saved search.

Parameters:
  - context: context.Context
  - saved: *SavedSearch (ID and Fingerprint already set)

Returns:
  - error: dberr.ErrDuplicate when the owner already saved this filter
*/
func (repository *PostgresRepository) Create(context context.Context, saved *SavedSearch) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING %s
	`, table.Table,
		table.ID, table.OwnerID, table.Name, table.Slug,
		table.Channel, table.Query, table.Fingerprint, table.CreatedAt,
		table.CreatedAt)

	err := repository.db.QueryRow(context, query,
		saved.ID, saved.OwnerID, saved.Name, saved.Slug,
		saved.Channel, saved.Query, saved.Fingerprint,
	).Scan(&saved.CreatedAt)

	return dberr.Wrap(err, "create_saved_search")
}

// Delete removes a saved search owned by ownerID.
func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		table.Table, table.OwnerID, table.ID)

	tag, err := repository.db.Exec(context, query, ownerID, id)
	if err != nil {
		return dberr.Wrap(err, "delete_saved_search")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
