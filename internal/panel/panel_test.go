// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package panel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/panel"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/postgres/postgrestest"
	"github.com/taibuivan/sophia/pkg/pointer"
)

// fakeRepository is an in-memory [panel.Repository].
type fakeRepository struct {
	panels map[int]*panel.Panel
	rooms  []panel.Room

	listed     bool
	lastFilter panel.Filter
}

func (repository *fakeRepository) List(_ context.Context, filter panel.Filter, _, _ int) ([]*panel.Panel, int, error) {
	repository.listed = true
	repository.lastFilter = filter

	panels := make([]*panel.Panel, 0)
	for _, item := range repository.panels {
		panels = append(panels, item)
	}
	return panels, len(panels), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id int) (*panel.Panel, error) {
	item, ok := repository.panels[id]
	if !ok {
		return nil, apperr.NotFound("Panel")
	}
	return item, nil
}

func (repository *fakeRepository) ListRooms(_ context.Context) ([]panel.Room, error) {
	rooms := make([]panel.Room, len(repository.rooms))
	copy(rooms, repository.rooms)
	return rooms, nil
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		panels: map[int]*panel.Panel{
			1: {
				ID:    1,
				Title: pointer.To("01"),
				Room:  pointer.To("St. Michael's Chapel"),
				Counts: panel.Counts{
					InscriptionCount: 3,
					ImageCount:       2,
					InscriptionTypes: []panel.TypeCount{{ID: 1, Text: pointer.To("Graffito"), Count: 3}},
				},
				Media: panel.Media{
					Documentation: []panel.Documentation{{ID: 5, ShortTitle: pointer.To("D-01"), Observation: pointer.To("<p>Soot traces</p>")}},
					RTI:           []panel.RTIObject{{ID: 8, Title: pointer.To("RTI 01"), URL: pointer.To("https://storage.example.org/rti/01")}},
					Mesh:          []panel.Mesh3D{{ID: 9, URL: pointer.To("https://storage.example.org/mesh/01.glb"), NumberOfTriangles: pointer.To(250000)}},
				},
			},
		},
		rooms: []panel.Room{
			{Name: "Nave", PanelCount: 4},
			{Name: "St. Michael's Chapel", PanelCount: 1},
		},
	}
}

/*
TestService_ListPanels_RoomResolution accepts room names and slugs.
*/
func TestService_ListPanels_RoomResolution(t *testing.T) {
	tests := []struct {
		name     string
		room     string
		wantRoom string
		wantList bool
	}{
		{"no_room", "", "", true},
		{"exact_name", "Nave", "Nave", true},
		{"slug", "st-michael-s-chapel", "St. Michael's Chapel", true},
		{"padded_name", "  Nave ", "Nave", true},
		{"unknown_room", "crypt", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newFakeRepository()
			service := panel.NewService(repository)

			panels, total, err := service.ListPanels(context.Background(), panel.Filter{Room: tt.room}, 20, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.wantList, repository.listed)
			if tt.wantList {
				assert.Equal(t, tt.wantRoom, repository.lastFilter.Room)
				return
			}
			assert.Empty(t, panels)
			assert.Zero(t, total)
		})
	}
}

/*
TestService_ListRooms derives URL slugs.
*/
func TestService_ListRooms(t *testing.T) {
	rooms, err := panel.NewService(newFakeRepository()).ListRooms(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []panel.Room{
		{Name: "Nave", Slug: "nave", PanelCount: 4},
		{Name: "St. Michael's Chapel", Slug: "st-michael-s-chapel", PanelCount: 1},
	}, rooms)
}

func newTestRouter(repository panel.Repository) http.Handler {
	router := chi.NewRouter()
	router.Mount("/panels", panel.NewHandler(panel.NewService(repository)).Routes())
	return router
}

/*
TestHandler_ListPanels renders counts and forwards filters.
*/
func TestHandler_ListPanels(t *testing.T) {
	repository := newFakeRepository()

	recorder := httptest.NewRecorder()
	newTestRouter(repository).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/panels?title_str=0&data_available=true", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NotNil(t, repository.lastFilter.DataAvailable)
	assert.True(t, *repository.lastFilter.DataAvailable)
	assert.Equal(t, "0", repository.lastFilter.TitlePrefix)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)

	assert.Equal(t, float64(3), body.Data[0]["inscription_count"])
	assert.Equal(t, float64(2), body.Data[0]["image_count"])
	assert.Len(t, body.Data[0]["inscription_types"], 1)
}

/*
TestHandler_GetPanel covers found, missing and malformed ids.
*/
func TestHandler_GetPanel(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"found", "/panels/1", http.StatusOK},
		{"missing", "/panels/2", http.StatusNotFound},
		{"malformed", "/panels/first", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestHandler_GetPanel_Media returns documentation and captures with the panel detail.
*/
func TestHandler_GetPanel_Media(t *testing.T) {
	router := newTestRouter(newFakeRepository())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/panels/1", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Documentation []panel.Documentation `json:"documentation"`
			RTI           []panel.RTIObject     `json:"rti"`
			Mesh          []panel.Mesh3D        `json:"mesh"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	require.Len(t, body.Data.Documentation, 1)
	assert.Equal(t, "<p>Soot traces</p>", *body.Data.Documentation[0].Observation)
	require.Len(t, body.Data.RTI, 1)
	assert.Equal(t, "RTI 01", *body.Data.RTI[0].Title)
	require.Len(t, body.Data.Mesh, 1)
	assert.Equal(t, 250000, *body.Data.Mesh[0].NumberOfTriangles)
}

/*
TestPostgresRepository_FindByID loads counts, documentation and captures from a migrated database.
*/
func TestPostgresRepository_FindByID(t *testing.T) {
	pool := postgrestest.Start(t)
	postgrestest.Exec(t, pool,
		`INSERT INTO survey.inscription_type (id, text) VALUES (1, 'Graffito')`,
		`INSERT INTO survey.panel (id, title, room, geometry) VALUES (1, '01', 'Nave', ST_GeomFromText('POINT(30.5143 50.4529)'))`,
		`INSERT INTO survey.panel (id, title, room) VALUES (2, '02', 'Nave')`,
		`INSERT INTO survey.inscription (id, panel_id, type_of_inscription_id, published) VALUES (1, 1, 1, TRUE), (2, 1, 1, FALSE)`,
		`INSERT INTO survey.documentation (id, short_title, observation) VALUES (1, 'D-01', '<p>Soot traces</p>')`,
		`INSERT INTO survey.panel_documentation (panel_id, documentation_id) VALUES (1, 1), (2, 1)`,
		`INSERT INTO survey.object_rti (title, url, panel_id) VALUES ('RTI 01', 'https://storage.example.org/rti/01', 1)`,
		`INSERT INTO survey.object_mesh_3d (url, panel_id, number_of_triangles) VALUES ('https://storage.example.org/mesh/01.glb', 1, 250000)`,
	)
	repository := panel.NewPostgresRepository(pool)

	found, err := repository.FindByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, found.InscriptionCount)
	require.Len(t, found.InscriptionTypes, 1)
	assert.Equal(t, 1, found.InscriptionTypes[0].Count)
	assert.Contains(t, string(found.Geometry), `"Point"`)

	require.Len(t, found.Documentation, 1)
	assert.Equal(t, "D-01", pointer.Val(found.Documentation[0].ShortTitle))
	require.Len(t, found.RTI, 1)
	assert.Equal(t, "https://storage.example.org/rti/01", pointer.Val(found.RTI[0].URL))
	require.Len(t, found.Mesh, 1)
	assert.Equal(t, 250000, pointer.Val(found.Mesh[0].NumberOfTriangles))

	bare, err := repository.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, bare.Documentation, 1)
	assert.Empty(t, bare.RTI)
	assert.Empty(t, bare.Mesh)

	_, err = repository.FindByID(context.Background(), 3)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}
