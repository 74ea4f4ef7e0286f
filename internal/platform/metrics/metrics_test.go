// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/platform/metrics"
)

/*
TestMiddleware_RoutePattern labels requests by chi route pattern, not raw path.
*/
func TestMiddleware_RoutePattern(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Get("/inscriptions/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/inscriptions/1", "/inscriptions/2", "/inscriptions/3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP sophia_http_requests_total Total number of HTTP requests
# TYPE sophia_http_requests_total counter
sophia_http_requests_total{method="GET",route="/inscriptions/{id}",status_code="404"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "sophia_http_requests_total"))
}

/*
TestObserveQuery records one histogram sample per call.
*/
func TestObserveQuery(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)

	m.ObserveQuery("search", 12*time.Millisecond, 40)
	m.ObserveQuery("autocomplete", 3*time.Millisecond, 7)
	m.CountIIIFFetch("fetched")

	count, err := testutil.GatherAndCount(m.Registry(), "sophia_catalogue_query_duration_seconds", "sophia_iiif_info_fetches_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

/*
TestNilMetrics ensures an uninstrumented service can call every recorder.
*/
func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveQuery("search", time.Millisecond, 1)
		m.CountIIIFFetch("error")
	})

	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {})
	assert.NotNil(t, m.Middleware(next))
}

/*
TestHandler_Exposition serves the text format.
*/
func TestHandler_Exposition(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)
	m.CountIIIFFetch("cache_hit")

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `sophia_iiif_info_fetches_total{outcome="cache_hit"} 1`)
}
