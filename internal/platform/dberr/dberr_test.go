// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/agora/internal/platform/apperr"
	"github.com/taibuivan/agora/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
	assert.Same(t, dberr.ErrNotFound, dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "get"))

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.Same(t, dberr.ErrDuplicate, dberr.Wrap(unique, "create"))

	cause := errors.New("connection reset")
	wrapped := apperr.As(dberr.Wrap(cause, "list_saved_searches"))
	require.NotNil(t, wrapped)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Cause.Error(), "list_saved_searches_failed")
}
