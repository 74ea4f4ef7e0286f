// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads page/limit query parameters and builds the "meta"
// block of paginated list responses.
package pagination

import (
	"net/http"

	"github.com/taibuivan/sophia/pkg/query"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20

	// MaxLimit caps a page so a single request cannot pull the whole catalogue.
	MaxLimit = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET of the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta describes the page returned alongside list data.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds the metadata for a page of a result set of size total.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest reads "page" and "limit". Missing or malformed values take the
// defaults; a page below 1 becomes 1 and the limit is clamped to 1..[MaxLimit].
func FromRequest(request *http.Request) Params {
	values := request.URL.Query()

	page := max(query.Int(values.Get("page"), DefaultPage), 1)
	limit := min(max(query.Int(values.Get("limit"), DefaultLimit), 1), MaxLimit)

	return Params{Page: page, Limit: limit}
}
