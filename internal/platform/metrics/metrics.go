// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the catalogue API.

It owns a private registry (no global state) holding:

  - HTTP request counts and latencies keyed by chi route pattern.
  - Catalogue query latencies and result sizes (search, autocomplete, summary).
  - Outcomes of IIIF info.json fetches.

Every recording method is safe to call on a nil [*Metrics], so domain services
can run uninstrumented in tests.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "sophia"

// unmatchedRoute labels requests that reached no route, keeping cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics contains the Prometheus collectors of the API.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	queryDuration *prometheus.HistogramVec
	queryResults  *prometheus.HistogramVec

	iiifFetchesTotal *prometheus.CounterVec
}

// New creates the registry and registers all collectors, including the Go
// runtime and process collectors.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken for HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "catalogue_query_duration_seconds",
			Help:      "Time taken by catalogue queries",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		},
		[]string{"operation"},
	)

	m.queryResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "catalogue_query_results",
			Help:      "Number of records or suggestions returned by catalogue queries",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
		},
		[]string{"operation"},
	)

	m.iiifFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "iiif_info_fetches_total",
			Help:      "IIIF info.json lookups by outcome",
		},
		[]string{"outcome"}, // cache_hit, fetched, error
	)

	for _, collector := range []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.queryDuration,
		m.queryResults,
		m.iiifFetchesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Register adds an extra collector, such as the database pool collector.
func (m *Metrics) Register(collector prometheus.Collector) error {
	return m.registry.Register(collector)
}

// Registry exposes the underlying registry as a gatherer.
func (m *Metrics) Registry() prometheus.Gatherer {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// # Recording

// ObserveQuery records the duration and result size of a catalogue operation.
func (m *Metrics) ObserveQuery(operation string, duration time.Duration, results int) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.queryResults.WithLabelValues(operation).Observe(float64(results))
}

// CountIIIFFetch records the outcome of an IIIF info.json lookup.
func (m *Metrics) CountIIIFFetch(outcome string) {
	if m == nil {
		return
	}
	m.iiifFetchesTotal.WithLabelValues(outcome).Inc()
}

// # HTTP Instrumentation

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Middleware counts requests and observes latency per route pattern.
//
// The route label comes from chi's route context after the request has been
// routed, so "/api/v1/inscriptions/{id}" is one series regardless of the id.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		route := unmatchedRoute
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.httpRequestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(recorder.status)).Inc()
		m.httpRequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}
