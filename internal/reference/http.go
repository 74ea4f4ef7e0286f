// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	requestutil "github.com/taibuivan/sophia/internal/platform/request"
	"github.com/taibuivan/sophia/internal/platform/respond"
	"github.com/taibuivan/sophia/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for reference data. Every endpoint is
// public and read-only.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the reference domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// # Vocabularies
	router.Get("/vocabularies", handler.listKinds)
	router.Get("/vocabularies/{kind}", handler.listTerms)
	router.Get("/vocabularies/{kind}/{id}", handler.getTerm)

	// # People
	router.Get("/historical-persons", handler.listHistoricalPersons)
	router.Get("/historical-persons/{id}", handler.getHistoricalPerson)
	router.Get("/authors", handler.listAuthors)

	// # Bibliography
	router.Get("/bibliography", handler.listBibliography)

	return router
}

/*
GET /api/v1/vocabularies.

Description: Lists the slugs of every available vocabulary.

Response:
  - 200: []string: Success
*/
func (handler *Handler) listKinds(writer http.ResponseWriter, request *http.Request) {
	slugs := make([]string, len(Kinds))
	for i, kind := range Kinds {
		slugs[i] = kind.Slug
	}
	respond.OK(writer, slugs)
}

/*
GET /api/v1/vocabularies/{kind}.

Description: Retrieves every entry of a controlled vocabulary.

Request:
  - kind: string (e.g. languages, writing-systems, genres)

Response:
  - 200: []Term: Success
  - 404: ErrNotFound: Unknown vocabulary
*/
func (handler *Handler) listTerms(writer http.ResponseWriter, request *http.Request) {
	terms, err := handler.service.ListTerms(request.Context(), requestutil.Param(request, FieldKind))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, terms)
}

// getTerm handles GET /api/v1/vocabularies/{kind}/{id}.
func (handler *Handler) getTerm(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.IntID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Term"))
		return
	}

	term, err := handler.service.GetTerm(request.Context(), requestutil.Param(request, FieldKind), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, term)
}

/*
GET /api/v1/historical-persons.

Description: Retrieves a paginated list of historical persons.

Request:
  - q: string (Name substring, English or Ukrainian)
  - page, limit: int

Response:
  - 200: []HistoricalPerson: Paginated list
*/
func (handler *Handler) listHistoricalPersons(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := PersonFilter{Query: request.URL.Query().Get(FieldQuery)}

	persons, total, err := handler.service.ListHistoricalPersons(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, persons, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// getHistoricalPerson handles GET /api/v1/historical-persons/{id}.
func (handler *Handler) getHistoricalPerson(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.IntID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Historical person"))
		return
	}

	person, err := handler.service.GetHistoricalPerson(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

// listAuthors handles GET /api/v1/authors.
func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	authors, err := handler.service.ListAuthors(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, authors)
}

// listBibliography handles GET /api/v1/bibliography.
func (handler *Handler) listBibliography(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.ListBibliography(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, items)
}
