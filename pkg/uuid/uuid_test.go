// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sophia/pkg/uuid"
)

/*
TestCanonical accepts the long UUID notations and rejects numeric ids.
*/
func TestCanonical(t *testing.T) {
	const want = "6f1d2c9e-3b4a-4f5e-8a7b-9c0d1e2f3a4b"

	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{"hyphenated", want, true},
		{"uppercase", "6F1D2C9E-3B4A-4F5E-8A7B-9C0D1E2F3A4B", true},
		{"braced", "{" + want + "}", true},
		{"urn", "urn:uuid:" + want, true},
		{"compact", "6f1d2c9e3b4a4f5e8a7b9c0d1e2f3a4b", false},
		{"numeric_id", "42", false},
		{"garbage_of_uuid_length", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := uuid.Canonical(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, want, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}
