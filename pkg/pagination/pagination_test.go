// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sophia/pkg/pagination"
)

/*
TestFromRequest applies defaults and clamps out-of-range values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/panels", 1, 20, 0},
		{"explicit", "/panels?page=3&limit=10", 3, 10, 20},
		{"page_below_one", "/panels?page=-2", 1, 20, 0},
		{"limit_too_large", "/panels?limit=5000", 1, 100, 0},
		{"limit_zero", "/panels?limit=0", 1, 1, 0},
		{"malformed", "/panels?page=two&limit=ten", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", tt.target, nil))

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset())
		})
	}
}

/*
TestNewMeta rounds the page count up.
*/
func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 20, Total: 41, TotalPages: 3}, pagination.NewMeta(1, 20, 41))
	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
}
