// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives the URL form of cathedral room names, for example
// "St. Michael's Chapel" becomes "st-michael-s-chapel".
//
// Letters outside ASCII that have no decomposition are dropped, so the
// original name stays the lookup key and the slug is only a matching aid.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented letters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// From lowercases s, strips accents and joins the remaining ASCII letter and
// digit runs with single hyphens.
func From(s string) string {
	plain, _, err := transform.String(stripMarks, s)
	if err != nil {
		plain = s
	}

	var builder strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(plain) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return builder.String()
}
