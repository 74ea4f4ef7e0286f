// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import (
	"strings"

	"github.com/taibuivan/sophia/pkg/richtext"
)

// # Predicates

// Predicate is a store-agnostic condition over inscription records.
//
// The concrete variants below form a closed set; a repository compiles them
// into its own query language.
type Predicate interface {
	predicate()
}

// Nothing matches no record.
type Nothing struct{}

// Equals matches records whose field equals Value. For fields behind a
// [Relation] it matches records having at least one related row with that value.
type Equals struct {
	Field *Field
	Value any
}

// StartsWith matches records whose field starts with Value (case-sensitive).
type StartsWith struct {
	Field *Field
	Value string
}

// Range matches records whose numeric field lies within the bounds.
// A nil bound is open.
type Range struct {
	Field *Field
	Min   *int
	Max   *int
}

// Contains matches records whose field contains Value, ignoring case.
// When Clean is set the comparison runs against the tag-stripped projection.
type Contains struct {
	Field *Field
	Value string
	Clean bool
}

// Present matches records whose field is neither NULL nor empty.
type Present struct {
	Field *Field
}

// Or matches when any member matches. An empty Or matches nothing.
type Or []Predicate

// And matches when every member matches. An empty And matches everything.
type And []Predicate

func (Nothing) predicate()    {}
func (Equals) predicate()     {}
func (StartsWith) predicate() {}
func (Range) predicate()      {}
func (Contains) predicate()   {}
func (Present) predicate()    {}
func (Or) predicate()         {}
func (And) predicate()        {}

// # Search Predicate

/*
BuildSearchPredicate builds the free-text match for term.

Plain fields match the trimmed term as a substring. Each rich text field
matches the stripped term against its tag-stripped projection, and, when the
legacy entity form of the term differs from the term itself, that entity form
against the raw stored value. Everything is OR-ed.

An empty or whitespace-only term yields [Nothing]; callers are expected to
skip filtering in that case rather than evaluate it.
*/
func BuildSearchPredicate(term string) Predicate {
	literal := strings.TrimSpace(term)
	if literal == "" {
		return Nothing{}
	}

	predicates := make(Or, 0, len(PlainSearchFields)+2*len(RichSearchFields))

	for _, field := range PlainSearchFields {
		predicates = append(predicates, Contains{Field: field, Value: literal})
	}

	for _, field := range RichSearchFields {
		predicates = append(predicates, richFieldPredicates(field, literal)...)
	}

	return predicates
}

// FieldPredicate builds the match of term against a single field, using the
// dual literal/entity match when the field is rich text.
func FieldPredicate(field *Field, term string) Predicate {
	literal := strings.TrimSpace(term)
	if literal == "" {
		return Nothing{}
	}

	if !field.Rich {
		return Contains{Field: field, Value: literal}
	}

	return Or(richFieldPredicates(field, literal))
}

// richFieldPredicates returns the stripped match and, if it differs, the entity match.
func richFieldPredicates(field *Field, literal string) []Predicate {
	stripped := richtext.StripMarkup(literal)
	if stripped == "" {
		stripped = literal
	}

	predicates := []Predicate{Contains{Field: field, Value: stripped, Clean: true}}

	if encoded := richtext.ToEntityForm(stripped); encoded != stripped {
		predicates = append(predicates, Contains{Field: field, Value: encoded})
	}

	return predicates
}

// IsNothing reports whether predicate can never match.
func IsNothing(predicate Predicate) bool {
	switch typed := predicate.(type) {
	case Nothing:
		return true
	case Or:
		for _, member := range typed {
			if !IsNothing(member) {
				return false
			}
		}
		return true
	case And:
		for _, member := range typed {
			if IsNothing(member) {
				return true
			}
		}
	}
	return false
}
