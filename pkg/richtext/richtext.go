// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package richtext normalizes the editor-authored rich text stored on inscriptions.

Scholarly fields (transcriptions, translations, commentary) are stored as HTML
produced by a WYSIWYG editor. Older records keep Greek and other non-Latin
characters as named entities (&delta;) instead of literal Unicode, so matching a
user's query has to happen in two shapes:

  - StripMarkup: the visible text of a field (tags removed, entities decoded).
  - ToEntityForm: the query rewritten the way the legacy editor would have stored it.

Every function here is pure and safe for concurrent use.
*/
package richtext

import (
	"errors"
	"io"
	"strings"

	"github.com/k3a/html2text"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// maxStripPasses bounds re-stripping of text whose decoded entities form new tags.
const maxStripPasses = 4

// StripMarkup removes every tag from text, decodes entities and trims whitespace.
//
// Stripping repeats until the output is stable so that escaped markup
// (&lt;b&gt;) never reappears as a literal tag.
func StripMarkup(text string) string {
	if text == "" {
		return ""
	}

	out := text
	for range maxStripPasses {
		stripped := stripOnce(out)
		if stripped == out {
			break
		}
		out = stripped
	}

	return strings.TrimSpace(out)
}

// stripOnce keeps only the text tokens of a single tokenizer pass.
func stripOnce(text string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(text))

	var builder strings.Builder
	builder.Grow(len(text))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return text
			}
			return builder.String()
		case html.TextToken:
			// Text() already unescapes character references.
			builder.Write(tokenizer.Text())
		}
	}
}

// ToEntityForm rewrites every character that has an HTML 4 named entity as
// "&name;". Characters without a named entity are kept as they are.
//
// The input is NFC-normalized first so that decomposed accents (α + U+0301)
// map to the same entity as their precomposed form.
func ToEntityForm(text string) string {
	if text == "" {
		return ""
	}

	composed := norm.NFC.String(text)

	var builder strings.Builder
	builder.Grow(len(composed))

	for _, r := range composed {
		if name, ok := entityNames[r]; ok {
			builder.WriteByte('&')
			builder.WriteString(name)
			builder.WriteByte(';')
			continue
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

// Normalize returns the comparison key of a rich text value: stripped,
// decoded, lower-cased and trimmed.
func Normalize(text string) string {
	return strings.ToLower(StripMarkup(text))
}

// PlainText renders rich text as readable plain text, keeping paragraph and
// line breaks. It is meant for exports, not for matching.
func PlainText(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(html2text.HTML2Text(text))
}
