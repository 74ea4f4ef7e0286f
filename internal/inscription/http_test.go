// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/inscription"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/ctxutil"
	"github.com/taibuivan/sophia/internal/platform/sec"
	"github.com/taibuivan/sophia/pkg/pointer"
)

// fakeRepository is an in-memory [inscription.Repository].
type fakeRepository struct {
	*fakeSource

	records     map[int]*inscription.Inscription
	memberships []inscription.Membership
	spans       []inscription.YearSpan

	lastQuery  inscription.Predicate
	lastLimit  int
	lastOffset int
	lookups    []int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		fakeSource: newFakeSource(nil),
		records:    make(map[int]*inscription.Inscription),
	}
}

func (repository *fakeRepository) Search(_ context.Context, query inscription.Predicate, limit, offset int) ([]*inscription.Summary, int, error) {
	repository.lastQuery, repository.lastLimit, repository.lastOffset = query, limit, offset

	summaries := make([]*inscription.Summary, 0, len(repository.records))
	for _, record := range repository.records {
		summaries = append(summaries, &record.Summary)
	}
	return summaries, len(summaries), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id int) (*inscription.Inscription, error) {
	repository.lookups = append(repository.lookups, id)
	record, ok := repository.records[id]
	if !ok {
		return nil, apperr.NotFound("Inscription")
	}
	return record, nil
}

func (repository *fakeRepository) Memberships(_ context.Context, query inscription.Predicate) ([]inscription.Membership, error) {
	repository.lastQuery = query
	return repository.memberships, nil
}

func (repository *fakeRepository) YearSpans(_ context.Context, _ inscription.Predicate) ([]inscription.YearSpan, error) {
	return repository.spans, nil
}

func (repository *fakeRepository) Export(_ context.Context, query inscription.Predicate, visit func(*inscription.Inscription) error) error {
	repository.lastQuery = query
	for id := 1; id <= len(repository.records); id++ {
		if record, ok := repository.records[id]; ok {
			if err := visit(record); err != nil {
				return err
			}
		}
	}
	return nil
}

// newTestRouter mounts the handler the way the API server does, with optional claims injected.
func newTestRouter(repository inscription.Repository, claims *sec.AuthClaims) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := inscription.NewService(repository, logger, nil, inscription.Limits{})

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/inscriptions", inscription.NewHandler(service).Routes())
	return router
}

func serve(handler http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func sampleInscription() *inscription.Inscription {
	return &inscription.Inscription{
		Summary: inscription.Summary{
			ID:      1,
			Title:   pointer.To("Graffito 1"),
			Panel:   &inscription.PanelRef{ID: 3, Title: pointer.To("01"), Room: pointer.To("Nave")},
			MinYear: pointer.To(1050),
			MaxYear: pointer.To(1100),
		},
		Transcription: pointer.To("<p>&Kappa;&upsilon;&rho;&iota;&epsilon;</p>"),
	}
}

/*
TestHandler_Search checks pagination and that filters reach the repository.
*/
func TestHandler_Search(t *testing.T) {
	repository := newFakeRepository()
	repository.records[1] = sampleInscription()

	recorder := serve(newTestRouter(repository, nil), "/inscriptions/search?language=3&material=abc&page=2&limit=5")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Len(t, body.Data, 1)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 5, body.Meta.Limit)
	assert.Equal(t, 5, repository.lastOffset)

	query, ok := repository.lastQuery.(inscription.And)
	require.True(t, ok)
	require.Len(t, query, 1)
	assert.Equal(t, 3, query[0].(inscription.Equals).Value)
}

/*
TestHandler_SearchWithoutTerm passes a nil query when nothing narrows the set.
*/
func TestHandler_SearchWithoutTerm(t *testing.T) {
	repository := newFakeRepository()

	recorder := serve(newTestRouter(repository, nil), "/inscriptions/search?q=%20%20")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, repository.lastQuery)
}

/*
TestHandler_Autocomplete returns an empty list for an empty term.
*/
func TestHandler_Autocomplete(t *testing.T) {
	recorder := serve(newTestRouter(newFakeRepository(), nil), "/inscriptions/autocomplete?q=")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[]}`, recorder.Body.String())
}

/*
TestHandler_Summary renders every dimension.
*/
func TestHandler_Summary(t *testing.T) {
	repository := newFakeRepository()
	repository.memberships = []inscription.Membership{
		{Dimension: inscription.DimensionLanguage, RecordID: 1, Label: pointer.To("Greek")},
	}
	repository.spans = []inscription.YearSpan{{RecordID: 1, MinYear: pointer.To(1050), MaxYear: pointer.To(1100)}}

	recorder := serve(newTestRouter(repository, nil), "/inscriptions/summary?q=sophia")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string][]map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	for _, key := range []string{"type_of_inscription", "writing_system", "language", "textual_genre", "pictorial_description", "min_year", "max_year", "avg_year"} {
		assert.Contains(t, body.Data, key)
	}
	assert.Equal(t, float64(1075), body.Data["avg_year"][0]["avg_year"])
}

/*
TestHandler_GetInscription covers found, missing and malformed ids. Ids that
cannot be a key never reach the repository.
*/
func TestHandler_GetInscription(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		status     int
		wantLookup bool
	}{
		{"found", "/inscriptions/1", http.StatusOK, true},
		{"missing", "/inscriptions/99", http.StatusNotFound, true},
		{"malformed", "/inscriptions/abc", http.StatusNotFound, false},
		{"negative", "/inscriptions/-1", http.StatusNotFound, false},
		{"beyond_int32", "/inscriptions/99999999999", http.StatusNotFound, false},
		{"int32_max", "/inscriptions/2147483647", http.StatusNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newFakeRepository()
			repository.records[1] = sampleInscription()

			recorder := serve(newTestRouter(repository, nil), tt.target)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.wantLookup, len(repository.lookups) == 1)
			if tt.status == http.StatusNotFound {
				assert.Contains(t, recorder.Body.String(), `"code":"NOT_FOUND"`)
			}
		})
	}
}

/*
TestHandler_ExportCSV enforces the moderator role and streams CSV.
*/
func TestHandler_ExportCSV(t *testing.T) {
	repository := newFakeRepository()
	repository.records[1] = sampleInscription()

	t.Run("anonymous_rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(newTestRouter(repository, nil), "/inscriptions/export.csv").Code)
	})

	t.Run("reader_forbidden", func(t *testing.T) {
		claims := &sec.AuthClaims{UserID: "u-1", Role: string(sec.RoleReader)}
		assert.Equal(t, http.StatusForbidden, serve(newTestRouter(repository, claims), "/inscriptions/export.csv").Code)
	})

	t.Run("moderator_downloads", func(t *testing.T) {
		claims := &sec.AuthClaims{UserID: "u-2", Role: string(sec.RoleModerator)}
		recorder := serve(newTestRouter(repository, claims), "/inscriptions/export.csv")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, strings.HasPrefix(recorder.Header().Get("Content-Type"), "text/csv"))
		assert.Contains(t, recorder.Header().Get("Content-Disposition"), "attachment")

		rows, err := csv.NewReader(recorder.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, inscription.ExportColumns, rows[0])
		assert.Equal(t, "Graffito 1", rows[1][1])
		assert.Equal(t, "<p>&Kappa;&upsilon;&rho;&iota;&epsilon;</p>", rows[1][16])

		present, ok := repository.lastQuery.(inscription.Present)
		require.True(t, ok, "export must be restricted to transcribed records")
		assert.Equal(t, "transcription", present.Field.Key)
	})

	t.Run("moderator_plain_text", func(t *testing.T) {
		claims := &sec.AuthClaims{UserID: "u-2", Role: string(sec.RoleModerator)}
		recorder := serve(newTestRouter(repository, claims), "/inscriptions/export.csv?format=plain")

		require.Equal(t, http.StatusOK, recorder.Code)

		rows, err := csv.NewReader(recorder.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Κυριε", rows[1][16])
	})
}
