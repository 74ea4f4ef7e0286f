// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid recognises the public identifiers of catalogue records.

Records are addressed by integer primary keys internally, while images also
carry a UUID that stays stable across database rebuilds. Handlers accept
either form; this package tells them apart.
*/
package uuid

import "github.com/google/uuid"

// # Parsing

// Canonical returns the lowercase hyphenated form of s and true when s is a
// UUID in any accepted notation (hyphenated, braced, or urn:uuid: prefixed).
func Canonical(s string) (string, bool) {

	// Reject the 32-digit compact form, it collides with numeric identifiers
	if len(s) < 36 {
		return "", false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}

	return id.String(), true
}
