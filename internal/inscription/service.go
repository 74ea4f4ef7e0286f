// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/taibuivan/sophia/internal/platform/metrics"
)

// # Service Layer

const (
	// MaxSuggestionsPerField is the ceiling of the per-field autocomplete limit.
	MaxSuggestionsPerField = 50

	// MaxSuggestionsTotal is the ceiling of the flattened autocomplete result.
	MaxSuggestionsTotal = 100
)

// Limits holds the autocomplete defaults applied when a request carries none.
type Limits struct {
	SuggestionsPerField int
	MaxSuggestions      int
}

// Service orchestrates search, autocomplete, summary and export over the catalogue.
type Service struct {
	repo    Repository
	logger  *slog.Logger
	metrics *metrics.Metrics
	limits  Limits
}

// NewService constructs a new inscription [Service]. metrics may be nil.
func NewService(repo Repository, logger *slog.Logger, recorder *metrics.Metrics, limits Limits) *Service {
	if limits.SuggestionsPerField <= 0 {
		limits.SuggestionsPerField = DefaultSuggestionsPerField
	}
	if limits.MaxSuggestions <= 0 {
		limits.MaxSuggestions = DefaultMaxSuggestions
	}

	return &Service{repo: repo, logger: logger, metrics: recorder, limits: limits}
}

/*
BuildQuery combines a free-text term with parsed filters.

Description: An empty term contributes no condition at all, so the result
covers every record the filters admit. A nil result matches everything.

Parameters:
  - term: string
  - filters: []Predicate (from [ParseFilters])

Returns:
  - Predicate: The AND of filters and the search predicate
*/
func BuildQuery(term string, filters []Predicate) Predicate {
	search := BuildSearchPredicate(term)
	if !IsNothing(search) {
		filters = append(filters, search)
	}

	if len(filters) == 0 {
		return nil
	}
	return And(filters)
}

// # Discovery

/*
Search returns a page of inscriptions matching the query.

Parameters:
  - context: context.Context
  - query: Predicate (see [BuildQuery])
  - limit, offset: int

Returns:
  - []*Summary: Page of results
  - int: Total count
  - error: Storage errors
*/
func (service *Service) Search(context context.Context, query Predicate, limit, offset int) ([]*Summary, int, error) {
	started := time.Now()

	summaries, total, err := service.repo.Search(context, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	service.metrics.ObserveQuery("search", time.Since(started), total)
	return summaries, total, nil
}

/*
Autocomplete returns suggestions for term.

Description: Zero limits fall back to the configured defaults; values above
[MaxSuggestionsPerField] and [MaxSuggestionsTotal] are clamped.

Parameters:
  - context: context.Context
  - term: string
  - limit: int (Distinct values per field)
  - maxResults: int (Total suggestions)

Returns:
  - []Suggestion: Sorted suggestions, never nil
  - error: Storage errors
*/
func (service *Service) Autocomplete(context context.Context, term string, limit, maxResults int) ([]Suggestion, error) {
	limit = clamp(limit, service.limits.SuggestionsPerField, MaxSuggestionsPerField)
	maxResults = clamp(maxResults, service.limits.MaxSuggestions, MaxSuggestionsTotal)

	started := time.Now()

	suggestions, err := Autocomplete(context, service.repo, term, limit, maxResults)
	if err != nil {
		return nil, err
	}

	service.metrics.ObserveQuery("autocomplete", time.Since(started), len(suggestions))
	service.logger.DebugContext(context, "autocomplete_served",
		slog.String("term", term),
		slog.Int("suggestions", len(suggestions)),
	)

	return suggestions, nil
}

// clamp replaces non-positive values with fallback and caps at ceiling.
func clamp(value, fallback, ceiling int) int {
	if value <= 0 {
		value = fallback
	}
	return min(value, ceiling)
}

/*
Summary computes the distribution report of the records matching query.

Parameters:
  - context: context.Context
  - query: Predicate

Returns:
  - Report: Distinct-record counts per dimension
  - error: Storage errors
*/
func (service *Service) Summary(context context.Context, query Predicate) (Report, error) {
	started := time.Now()

	memberships, err := service.repo.Memberships(context, query)
	if err != nil {
		return Report{}, err
	}

	spans, err := service.repo.YearSpans(context, query)
	if err != nil {
		return Report{}, err
	}

	service.metrics.ObserveQuery("summary", time.Since(started), len(spans))
	return Summarize(memberships, spans), nil
}

// Get returns the fully resolved inscription with the given id.
func (service *Service) Get(context context.Context, id int) (*Inscription, error) {
	return service.repo.FindByID(context, id)
}

// # Export

/*
Export writes every transcribed inscription to writer as CSV.

Parameters:
  - context: context.Context
  - writer: io.Writer
  - options: ExportOptions (rich text is exported as stored unless PlainText is set)

Returns:
  - int: Number of rows written, excluding the header
  - error: Storage or write errors
*/
func (service *Service) Export(context context.Context, writer io.Writer, options ExportOptions) (int, error) {
	started := time.Now()

	exporter := newCSVExporter(writer, options)
	if err := exporter.writeHeader(); err != nil {
		return 0, err
	}

	err := service.repo.Export(context, Present{Field: fieldTranscriptionRaw}, exporter.write)
	if err != nil {
		return exporter.rows, err
	}

	if err := exporter.flush(); err != nil {
		return exporter.rows, err
	}

	service.metrics.ObserveQuery("export", time.Since(started), exporter.rows)
	service.logger.InfoContext(context, "inscriptions_exported",
		slog.Int("rows", exporter.rows),
		slog.Duration("duration", time.Since(started)),
	)

	return exporter.rows, nil
}
