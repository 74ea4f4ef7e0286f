// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query parses URL query values leniently.

Catalogue filters are optional: a malformed value behaves as if the parameter
were absent rather than failing the request.
*/
package query

import (
	"strconv"
	"strings"
)

// parseInt32 reads a base-10 integer that fits a Postgres INTEGER column.
func parseInt32(raw string) (int, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// IntSlice parses repeated query values into integers, skipping entries that
// are not base-10 numbers or fall outside the int32 range.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range vals {
		if i, ok := parseInt32(v); ok {
			res = append(res, i)
		}
	}
	return res
}

// Int parses raw as a base-10 int32, returning fallback when raw is empty,
// malformed or out of range.
func Int(raw string, fallback int) int {
	if v, ok := parseInt32(raw); ok {
		return v
	}
	return fallback
}

// Bool parses raw with [strconv.ParseBool]. It returns nil when the
// parameter is absent or unreadable so callers can leave the filter unset.
func Bool(raw string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}
