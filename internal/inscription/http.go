// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package inscription provides the HTTP interface for catalogue discovery.

# Routing Strategy

  - Public (v1): Search, autocomplete, summary and detail (GET /inscriptions/...).
  - Restricted (v1): The CSV export requires the Moderator role.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package inscription

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/ctxutil"
	"github.com/taibuivan/sophia/internal/platform/middleware"
	requestutil "github.com/taibuivan/sophia/internal/platform/request"
	"github.com/taibuivan/sophia/internal/platform/respond"
	"github.com/taibuivan/sophia/internal/platform/sec"
	"github.com/taibuivan/sophia/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for inscription discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new inscription [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the inscription endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/search", handler.search)
	router.Get("/autocomplete", handler.autocomplete)
	router.Get("/summary", handler.summary)

	// ## Data Export (Moderator Protected)
	router.Group(func(moderator chi.Router) {
		moderator.Use(middleware.RequireRole(sec.RoleModerator))
		moderator.Get("/export.csv", handler.exportCSV)
	})

	router.Get("/{id}", handler.getInscription)

	return router
}

// queryFromRequest builds the search query from the q parameter and the filters.
func queryFromRequest(request *http.Request) Predicate {
	values := request.URL.Query()
	return BuildQuery(values.Get(FieldQuery), ParseFilters(values))
}

/*
GET /api/v1/inscriptions/search.

Description: Free-text search AND-ed with the recognised filters.
Malformed filter values are ignored.

Request:
  - q: string (Optional search term)
  - type_of_inscription, language, tags, ...: filter parameters
  - page, limit: int

Response:
  - 200: []Summary: Paginated list
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	summaries, total, err := handler.service.Search(request.Context(), queryFromRequest(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, summaries, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/inscriptions/autocomplete.

Request:
  - q: string (Search term; empty yields an empty list)
  - limit: int (Distinct values per field, 1..50)
  - max: int (Total suggestions, 1..100)

Response:
  - 200: []Suggestion: Sorted suggestions
*/
func (handler *Handler) autocomplete(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	limit, _ := strconv.Atoi(values.Get(FieldLimit))
	maxResults, _ := strconv.Atoi(values.Get(FieldMaxResults))

	suggestions, err := handler.service.Autocomplete(request.Context(), values.Get(FieldQuery), limit, maxResults)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suggestions)
}

/*
GET /api/v1/inscriptions/summary.

Description: Distribution of the records matched by the same query as search.

Response:
  - 200: Report: Counts per classification and year
*/
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.Summary(request.Context(), queryFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

/*
GET /api/v1/inscriptions/{id}.

Response:
  - 200: Inscription: Fully resolved record
  - 404: ErrNotFound: Unknown, unpublished, or malformed id
*/
func (handler *Handler) getInscription(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.IntID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Inscription"))
		return
	}

	inscription, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, inscription)
}

/*
GET /api/v1/inscriptions/export.csv.

Description: Streams every transcribed inscription as CSV. Rich text is sent
as stored; "?format=plain" renders it as plain text. Once the first byte is
sent, failures can only be logged.

Response:
  - 200: text/csv attachment
*/
func (handler *Handler) exportCSV(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filename := fmt.Sprintf("inscriptions-%s.csv", time.Now().UTC().Format("20060102"))
	respond.Attachment(writer, filename, "text/csv; charset=utf-8")

	logger := ctxutil.GetLogger(request.Context())

	options := ExportOptions{PlainText: request.URL.Query().Get("format") == "plain"}
	rows, err := handler.service.Export(request.Context(), writer, options)
	if err != nil {
		logger.ErrorContext(request.Context(), "inscription_export_failed",
			slog.String("user_id", userID),
			slog.Int("rows", rows),
			slog.Bool("plain_text", options.PlainText),
			slog.Any("error", err),
		)
		return
	}

	logger.InfoContext(request.Context(), "inscription_export_downloaded",
		slog.String("user_id", userID),
		slog.Int("rows", rows),
	)
}
