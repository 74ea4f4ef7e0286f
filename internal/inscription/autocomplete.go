// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import (
	"context"
	"slices"
	"strings"

	"github.com/taibuivan/sophia/pkg/richtext"
)

// # Autocomplete Aggregator

const (
	// DefaultSuggestionsPerField caps distinct values collected per field group.
	DefaultSuggestionsPerField = 10

	// DefaultMaxSuggestions caps the flattened result.
	DefaultMaxSuggestions = 20
)

// CandidateSource streams the values of one field for records matching predicate.
//
// visit is called once per row in ascending record id order; returning false
// stops the stream and releases the underlying cursor.
type CandidateSource interface {
	StreamCandidates(ctx context.Context, field *Field, predicate Predicate, visit func(Candidate) bool) error
}

// suggestionGroup accumulates the distinct values of a single field.
type suggestionGroup struct {
	source string
	order  []string
	values map[string]*suggestionValue
}

type suggestionValue struct {
	display string
	ids     map[int]struct{}
}

/*
Autocomplete returns ranked suggestions for term.

Each field in [AutocompleteFields] is searched on its own. Values are stripped
of markup and de-duplicated case-insensitively within their field, keeping the
ids of the records holding them. A field stops streaming once limit distinct
values have been found, so the ids of a value only cover the rows read up to
that point; records further along the stream that share the value are not
listed. The union is sorted by value and cut to maxResults.

An empty term returns an empty, non-nil slice.
*/
func Autocomplete(ctx context.Context, source CandidateSource, term string, limit, maxResults int) ([]Suggestion, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []Suggestion{}, nil
	}

	if limit <= 0 {
		limit = DefaultSuggestionsPerField
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxSuggestions
	}

	suggestions := make([]Suggestion, 0, maxResults)

	for _, field := range AutocompleteFields {
		group, err := collectGroup(ctx, source, field, term, limit)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, group.flatten()...)
	}

	slices.SortStableFunc(suggestions, compareSuggestions)

	if len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}

	return suggestions, nil
}

// collectGroup streams one field until limit distinct values are known.
func collectGroup(ctx context.Context, source CandidateSource, field *Field, term string, limit int) (*suggestionGroup, error) {
	group := &suggestionGroup{
		source: field.Source,
		values: make(map[string]*suggestionValue),
	}

	err := source.StreamCandidates(ctx, field, FieldPredicate(field, term), func(candidate Candidate) bool {
		display := richtext.StripMarkup(candidate.Value)
		key := strings.ToLower(display)
		if key == "" {
			return true
		}

		value, found := group.values[key]
		if !found {
			value = &suggestionValue{display: display, ids: make(map[int]struct{})}
			group.values[key] = value
			group.order = append(group.order, key)
		}
		value.ids[candidate.ID] = struct{}{}

		return len(group.values) < limit
	})
	if err != nil {
		return nil, err
	}

	return group, nil
}

// flatten converts the group into suggestions with sorted ids.
func (group *suggestionGroup) flatten() []Suggestion {
	out := make([]Suggestion, 0, len(group.order))
	for _, key := range group.order {
		value := group.values[key]

		ids := make([]int, 0, len(value.ids))
		for id := range value.ids {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		out = append(out, Suggestion{Value: value.display, Source: group.source, IDs: ids})
	}
	return out
}

// compareSuggestions orders by value ignoring case, then by exact value and source.
func compareSuggestions(a, b Suggestion) int {
	if c := strings.Compare(strings.ToLower(a.Value), strings.ToLower(b.Value)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	return strings.Compare(a.Source, b.Source)
}
