// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/inscription"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/postgres/postgrestest"
	"github.com/taibuivan/sophia/pkg/pointer"
)

// seedCatalogue loads three published inscriptions and one unpublished one.
//
//   - 1: Greek graffito whose transcription is stored entity-encoded
//   - 2: unpublished copy of the same text
//   - 3: plain transcription, mentions a historical person
//   - 4: no transcription
func seedCatalogue(t *testing.T) *inscription.PostgresRepository {
	pool := postgrestest.Start(t)

	postgrestest.Exec(t, pool,
		`INSERT INTO survey.language (id, text) VALUES (1, 'Greek')`,
		`INSERT INTO survey.inscription_type (id, text) VALUES (1, 'Graffito')`,
		`INSERT INTO survey.genre (id, text) VALUES (1, 'Prayer')`,
		`INSERT INTO survey.tag (id, text) VALUES (1, 'Cross')`,
		`INSERT INTO survey.historical_person (id, name) VALUES (1, 'Volodymyr')`,
		`INSERT INTO survey.panel (id, title, room) VALUES (1, '01', 'Nave')`,
		`INSERT INTO survey.inscription (id, panel_id, title, type_of_inscription_id, language_id, min_year, max_year, transcription, published)
		 VALUES (1, 1, 'Graffito 1', 1, 1, 1000, 1100, '<p>&delta;&omicron;&xi;&alpha;</p>', TRUE)`,
		`INSERT INTO survey.inscription (id, panel_id, title, transcription, published)
		 VALUES (2, 1, 'Hidden', '<p>&delta;&omicron;&xi;&alpha;</p>', FALSE)`,
		`INSERT INTO survey.inscription (id, panel_id, title, transcription, published)
		 VALUES (3, 1, 'Other', '<p><em>other</em></p>', TRUE)`,
		`INSERT INTO survey.inscription (id, panel_id, title, published) VALUES (4, 1, 'Untranscribed', TRUE)`,
		`INSERT INTO survey.inscription_genre (inscription_id, genre_id) VALUES (1, 1)`,
		`INSERT INTO survey.inscription_tag (inscription_id, tag_id) VALUES (1, 1)`,
		`INSERT INTO survey.inscription_mentioned_person (inscription_id, historical_person_id) VALUES (3, 1)`,
		`INSERT INTO survey.translation (inscription_id, language_id, text) VALUES (1, 1, '<p>Glory</p>')`,
		`INSERT INTO survey.description (inscription_id, text) VALUES (1, 'Scratched near the window')`,
	)

	return inscription.NewPostgresRepository(pool)
}

func summaryIDs(summaries []*inscription.Summary) []int {
	ids := make([]int, 0, len(summaries))
	for _, summary := range summaries {
		ids = append(ids, summary.ID)
	}
	return ids
}

/*
TestPostgresRepository runs the compiled predicates against a migrated database.
*/
func TestPostgresRepository(t *testing.T) {
	repository := seedCatalogue(t)
	ctx := context.Background()

	t.Run("search", func(t *testing.T) {
		tests := []struct {
			name    string
			term    string
			wantIDs []int
		}{
			{"greek_letter_matches_entity_form", "δ", []int{1}},
			{"tag_names_are_not_content", "em", []int{}},
			{"stripped_text", "other", []int{3}},
			{"related_person_scoped_to_owner", "volodymyr", []int{3}},
			{"plain_title", "graffito", []int{1}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				summaries, total, err := repository.Search(ctx, inscription.BuildSearchPredicate(tt.term), 20, 0)
				require.NoError(t, err)

				assert.Equal(t, tt.wantIDs, summaryIDs(summaries))
				assert.Equal(t, len(tt.wantIDs), total)
			})
		}
	})

	t.Run("search_page_past_end", func(t *testing.T) {
		summaries, total, err := repository.Search(ctx, inscription.BuildSearchPredicate("δ"), 20, 40)
		require.NoError(t, err)

		assert.Empty(t, summaries)
		assert.Equal(t, 1, total)
	})

	t.Run("stream_candidates", func(t *testing.T) {
		field := inscription.FieldTranscription

		var candidates []inscription.Candidate
		err := repository.StreamCandidates(ctx, field, inscription.FieldPredicate(field, "δ"), func(candidate inscription.Candidate) bool {
			candidates = append(candidates, candidate)
			return true
		})
		require.NoError(t, err)

		require.Len(t, candidates, 1)
		assert.Equal(t, 1, candidates[0].ID)
		assert.Equal(t, "<p>&delta;&omicron;&xi;&alpha;</p>", candidates[0].Value)
	})

	t.Run("autocomplete", func(t *testing.T) {
		suggestions, err := inscription.Autocomplete(ctx, repository, "δ", 10, 20)
		require.NoError(t, err)

		require.Len(t, suggestions, 1)
		assert.Equal(t, inscription.Suggestion{Value: "δοξα", Source: "Transcription", IDs: []int{1}}, suggestions[0])
	})

	t.Run("memberships", func(t *testing.T) {
		memberships, err := repository.Memberships(ctx, inscription.BuildSearchPredicate("δ"))
		require.NoError(t, err)

		labels := make(map[inscription.Dimension]string)
		for _, membership := range memberships {
			assert.Equal(t, 1, membership.RecordID)
			labels[membership.Dimension] = pointer.Val(membership.Label)
		}

		assert.Equal(t, map[inscription.Dimension]string{
			inscription.DimensionTypeOfInscription:    "Graffito",
			inscription.DimensionLanguage:             "Greek",
			inscription.DimensionTextualGenre:         "Prayer",
			inscription.DimensionPictorialDescription: "Cross",
		}, labels)
	})

	t.Run("find_by_id", func(t *testing.T) {
		record, err := repository.FindByID(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, "Graffito 1", pointer.Val(record.Title))
		require.Len(t, record.Translations, 1)
		require.NotNil(t, record.Translations[0].Language)
		assert.Equal(t, "Greek", pointer.Val(record.Translations[0].Language.Text))
		assert.Equal(t, "<p>Glory</p>", pointer.Val(record.Translations[0].Text))
		require.Len(t, record.Descriptions, 1)
		assert.Nil(t, record.Descriptions[0].Language)
	})

	t.Run("find_unpublished", func(t *testing.T) {
		_, err := repository.FindByID(ctx, 2)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "NOT_FOUND", appError.Code)
	})

	t.Run("export_transcribed_only", func(t *testing.T) {
		var ids []int
		err := repository.Export(ctx, inscription.Present{Field: inscription.FieldTranscription}, func(record *inscription.Inscription) error {
			ids = append(ids, record.ID)
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, []int{1, 3}, ids)
	})
}
