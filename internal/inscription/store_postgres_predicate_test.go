// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/inscription"
)

// filter parses a single query string into its only predicate.
func filter(t *testing.T, query string) inscription.Predicate {
	t.Helper()

	values, err := url.ParseQuery(query)
	require.NoError(t, err)

	predicates := inscription.ParseFilters(values)
	require.Len(t, predicates, 1)
	return predicates[0]
}

/*
TestCompile renders each predicate variant into SQL with bound arguments.
*/
func TestCompile(t *testing.T) {
	tests := []struct {
		name      string
		predicate inscription.Predicate
		wantSQL   string
		wantArgs  []any
	}{
		{"nil_matches_all", nil, "TRUE", nil},
		{"nothing", inscription.Nothing{}, "FALSE", nil},
		{"empty_or", inscription.Or{}, "FALSE", nil},
		{"empty_and", inscription.And{}, "TRUE", nil},
		{"open_range", inscription.Range{Field: inscription.FieldTitle}, "TRUE", nil},
		{
			"contains_escapes_wildcards",
			inscription.Contains{Field: inscription.FieldTitle, Value: `50%_off\`},
			"i.title ILIKE $1",
			[]any{`%50\%\_off\\%`},
		},
		{
			"contains_clean_projection",
			inscription.Contains{Field: inscription.FieldTranscription, Value: "δ", Clean: true},
			"regexp_replace(i.transcription, '<[^>]+>', '', 'g') ILIKE $1",
			[]any{"%δ%"},
		},
		{
			"starts_with_panel_title",
			inscription.StartsWith{Field: inscription.FieldPanelTitle, Value: "A"},
			"p.title LIKE $1",
			[]any{"A%"},
		},
		{
			"present",
			inscription.Present{Field: inscription.FieldTitle},
			"COALESCE(i.title, '') <> ''",
			nil,
		},
		{
			"related_field_uses_exists",
			inscription.Contains{Field: inscription.FieldImageTitle, Value: "north"},
			"EXISTS (SELECT 1 FROM survey.image r WHERE r.inscription_id = i.id AND r.title ILIKE $1)",
			[]any{"%north%"},
		},
		{
			"membership_filter",
			filter(t, "tags=7"),
			"EXISTS (SELECT 1 FROM survey.inscription_tag r WHERE r.inscription_id = i.id AND r.tag_id = $1)",
			[]any{7},
		},
		{
			"panel_filter",
			filter(t, "material=2"),
			"p.material_id = $1",
			[]any{2},
		},
		{
			"year_bounds",
			filter(t, "min_year=800"),
			"i.min_year >= $1",
			[]any{800},
		},
		{
			"composite_numbers_placeholders_in_order",
			inscription.And{
				filter(t, "language=3"),
				inscription.Or{
					inscription.Contains{Field: inscription.FieldTitle, Value: "a"},
					inscription.Contains{Field: inscription.FieldPanelTitle, Value: "b"},
				},
			},
			"(i.language_id = $1 AND (i.title ILIKE $2 OR p.title ILIKE $3))",
			[]any{3, "%a%", "%b%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := inscription.Compile(tt.predicate)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

/*
TestCompileDirect evaluates related-field conditions on the row in scope.
*/
func TestCompileDirect(t *testing.T) {
	sql, args := inscription.CompileDirect(inscription.And{
		inscription.Contains{Field: inscription.FieldMentionedPersonName, Value: "Yaroslav"},
	})

	assert.Equal(t, "(r.name ILIKE $1)", sql)
	assert.Equal(t, []any{"%Yaroslav%"}, args)
}

/*
TestCompile_SearchPredicate keeps user input out of the SQL text.
*/
func TestCompile_SearchPredicate(t *testing.T) {
	term := "'; DROP TABLE survey.inscription; --"

	sql, args := inscription.Compile(inscription.BuildSearchPredicate(term))

	assert.NotContains(t, sql, "DROP")
	assert.Len(t, args, len(inscription.PlainSearchFields)+len(inscription.RichSearchFields))
}
