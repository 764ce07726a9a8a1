// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/agora/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		want   pagination.Params
		offset int
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 20}, 0},
		{"explicit", "?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}, 20},
		{"malformed", "?page=x&limit=y", pagination.Params{Page: 1, Limit: 20}, 0},
		{"clamped", "?page=-2&limit=1000", pagination.Params{Page: 1, Limit: 20}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/"+tt.query, nil))
			assert.Equal(t, tt.want, params)
			assert.Equal(t, tt.offset, params.Offset())
		})
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, pagination.NewMeta(2, 10, 21))
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 5).TotalPages)
}
