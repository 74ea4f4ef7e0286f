// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/inscription"
)

// fakeSource serves canned candidates per field and records how many rows were consumed.
type fakeSource struct {
	candidates map[string][]inscription.Candidate
	consumed   map[string]int
	err        error
}

func newFakeSource(candidates map[string][]inscription.Candidate) *fakeSource {
	return &fakeSource{candidates: candidates, consumed: make(map[string]int)}
}

func (source *fakeSource) StreamCandidates(_ context.Context, field *inscription.Field, _ inscription.Predicate, visit func(inscription.Candidate) bool) error {
	if source.err != nil {
		return source.err
	}
	for _, candidate := range source.candidates[field.Key] {
		source.consumed[field.Key]++
		if !visit(candidate) {
			return nil
		}
	}
	return nil
}

/*
TestAutocomplete_GroupsAndSorts verifies de-duplication, id collection and ordering.
*/
func TestAutocomplete_GroupsAndSorts(t *testing.T) {
	source := newFakeSource(map[string][]inscription.Candidate{
		"title": {
			{ID: 4, Value: "Graffito 2"},
			{ID: 1, Value: "graffito 2"},
			{ID: 2, Value: "Alpha"},
		},
		"transcription": {
			{ID: 7, Value: "<p>alpha <em>omega</em></p>"},
		},
	})

	suggestions, err := inscription.Autocomplete(context.Background(), source, "A", 10, 20)
	require.NoError(t, err)

	require.Len(t, suggestions, 3)
	assert.Equal(t, inscription.Suggestion{Value: "Alpha", Source: "Title", IDs: []int{2}}, suggestions[0])
	assert.Equal(t, inscription.Suggestion{Value: "alpha omega", Source: "Transcription", IDs: []int{7}}, suggestions[1])
	assert.Equal(t, inscription.Suggestion{Value: "Graffito 2", Source: "Title", IDs: []int{1, 4}}, suggestions[2])
}

/*
TestAutocomplete_Caps checks the per-field and total limits and the early stop.
*/
func TestAutocomplete_Caps(t *testing.T) {
	var titles, panels []inscription.Candidate
	for i := range 30 {
		titles = append(titles, inscription.Candidate{ID: i + 1, Value: "title " + string(rune('a'+i%26)) + strings.Repeat("x", i/26)})
		panels = append(panels, inscription.Candidate{ID: i + 1, Value: "panel " + string(rune('a'+i%26)) + strings.Repeat("x", i/26)})
	}
	source := newFakeSource(map[string][]inscription.Candidate{"title": titles, "panel_title": panels})

	suggestions, err := inscription.Autocomplete(context.Background(), source, "x", 5, 8)
	require.NoError(t, err)

	assert.Len(t, suggestions, 8)
	assert.Equal(t, 5, source.consumed["title"], "stream must stop once the limit is reached")
	assert.Equal(t, 5, source.consumed["panel_title"])

	assert.True(t, slices.IsSortedFunc(suggestions, func(a, b inscription.Suggestion) int {
		return strings.Compare(strings.ToLower(a.Value), strings.ToLower(b.Value))
	}))

	for _, suggestion := range suggestions {
		assert.NotContains(t, suggestion.Value, "<")
	}
}

/*
TestAutocomplete_EmptyTerm returns an empty, non-nil list without touching the store.
*/
func TestAutocomplete_EmptyTerm(t *testing.T) {
	source := newFakeSource(nil)
	source.err = errors.New("must not be called")

	suggestions, err := inscription.Autocomplete(context.Background(), source, "   ", 10, 20)
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

/*
TestAutocomplete_SkipsBlankValues ignores values that are empty once markup is removed.
*/
func TestAutocomplete_SkipsBlankValues(t *testing.T) {
	source := newFakeSource(map[string][]inscription.Candidate{
		"romanisation": {{ID: 1, Value: "<p> </p>"}, {ID: 2, Value: "Kyrie"}},
	})

	suggestions, err := inscription.Autocomplete(context.Background(), source, "k", 10, 20)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Romanisation", suggestions[0].Source)
}

/*
TestAutocomplete_StoreError propagates repository failures.
*/
func TestAutocomplete_StoreError(t *testing.T) {
	source := newFakeSource(nil)
	source.err = errors.New("connection reset")

	_, err := inscription.Autocomplete(context.Background(), source, "a", 10, 20)
	assert.EqualError(t, err, "connection reset")
}

/*
TestAutocomplete_EarlyStopKeepsSeenIDs lists only the ids read before a field reached its limit.
*/
func TestAutocomplete_EarlyStopKeepsSeenIDs(t *testing.T) {
	source := newFakeSource(map[string][]inscription.Candidate{
		"title": {
			{ID: 1, Value: "Alpha"},
			{ID: 2, Value: "Beta"},
			{ID: 3, Value: "alpha"},
		},
	})

	suggestions, err := inscription.Autocomplete(context.Background(), source, "a", 2, 20)
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	assert.Equal(t, inscription.Suggestion{Value: "Alpha", Source: "Title", IDs: []int{1}}, suggestions[0])
	assert.Equal(t, 2, source.consumed["title"])
}
