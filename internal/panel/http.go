// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package panel

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	requestutil "github.com/taibuivan/sophia/internal/platform/request"
	"github.com/taibuivan/sophia/internal/platform/respond"
	"github.com/taibuivan/sophia/pkg/pagination"
	"github.com/taibuivan/sophia/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for panels.
type Handler struct {
	service *Service
}

// NewHandler constructs a new panel [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the panel endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPanels)
	router.Get("/rooms", handler.listRooms)
	router.Get("/{id}", handler.getPanel)

	return router
}

/*
GET /api/v1/panels.

Request:
  - room: string (Room name or slug)
  - title_str: string (Title prefix)
  - data_available: bool
  - page, limit: int

Response:
  - 200: []Panel: Paginated list with counts
*/
func (handler *Handler) listPanels(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := Filter{
		Room:          params.Get(FieldRoom),
		TitlePrefix:   params.Get(FieldTitle),
		DataAvailable: query.Bool(params.Get(FieldDataAvailable)),
	}

	panels, total, err := handler.service.ListPanels(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, panels, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// listRooms handles GET /api/v1/panels/rooms.
func (handler *Handler) listRooms(writer http.ResponseWriter, request *http.Request) {
	rooms, err := handler.service.ListRooms(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rooms)
}

/*
GET /api/v1/panels/{id}.

Response:
  - 200: Panel: Panel with GeoJSON geometry and counts
  - 404: ErrNotFound: Unknown or malformed id
*/
func (handler *Handler) getPanel(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.IntID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Panel"))
		return
	}

	panel, err := handler.service.GetPanel(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, panel)
}
