// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sophia/pkg/query"
)

/*
TestIntSlice keeps numeric values and drops the rest.
*/
func TestIntSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []int
	}{
		{"nil", nil, nil},
		{"numbers", []string{"1", " 2 ", "-3"}, []int{1, 2, -3}},
		{"mixed", []string{"abc", "4", "1.5", ""}, []int{4}},
		{"int32_bounds", []string{"2147483647", "-2147483648"}, []int{2147483647, -2147483648}},
		{"beyond_int32", []string{"3000000000", "-2147483649", "5"}, []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.IntSlice(tt.input))
		})
	}
}

/*
TestInt falls back on empty or malformed input.
*/
func TestInt(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback int
		want     int
	}{
		{"empty", "", 7, 7},
		{"number", "12", 7, 12},
		{"padded", " 3 ", 0, 3},
		{"negative", "-4", 0, -4},
		{"malformed", "12a", 7, 7},
		{"beyond_int32", "99999999999", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Int(tt.raw, tt.fallback))
		})
	}
}

/*
TestBool leaves the filter unset unless the value reads as a boolean.
*/
func TestBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name string
		raw  string
		want *bool
	}{
		{"empty", "", nil},
		{"true", "true", &yes},
		{"one", "1", &yes},
		{"false", "False", &no},
		{"zero", "0", &no},
		{"garbage", "maybe", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Bool(tt.raw))
		})
	}
}
