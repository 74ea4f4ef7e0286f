// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/middleware"
	requestutil "github.com/taibuivan/sophia/internal/platform/request"
	"github.com/taibuivan/sophia/internal/platform/respond"
	"github.com/taibuivan/sophia/internal/platform/sec"
	"github.com/taibuivan/sophia/pkg/pagination"
	"github.com/taibuivan/sophia/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for images.
type Handler struct {
	service *Service
}

// NewHandler constructs a new image [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the image endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listImages)
	router.Get("/{identifier}", handler.getImage)

	router.Group(func(moderated chi.Router) {
		moderated.Use(middleware.RequireRole(sec.RoleModerator))
		moderated.Post("/{id}/dimensions", handler.refreshDimensions)
	})

	return router
}

/*
GET /api/v1/images.

Request:
  - panel, inscription, type_of_image: int (Optional owner and type filters)
  - page, limit: int

Response:
  - 200: []Image: Paginated list with IIIF URLs
*/
func (handler *Handler) listImages(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	params := request.URL.Query()

	filter := Filter{
		PanelID:       query.Int(params.Get(FieldPanel), 0),
		InscriptionID: query.Int(params.Get(FieldInscription), 0),
		TypeOfImageID: query.Int(params.Get(FieldTypeOfImage), 0),
	}

	images, total, err := handler.service.ListImages(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, images, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// getImage handles GET /api/v1/images/{identifier}, accepting an id or a UUID.
func (handler *Handler) getImage(writer http.ResponseWriter, request *http.Request) {
	image, err := handler.service.GetImage(request.Context(), requestutil.Param(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, image)
}

/*
POST /api/v1/images/{id}/dimensions.

Request:
  - body: Dimensions (Optional; when absent the size is read from info.json)

Response:
  - 200: Image: The image with its new size and region URL
  - 404: ErrNotFound: Unknown image
  - 422: ErrUnprocessable: Image without an IIIF file
  - 502: ErrBadGateway: IIIF server unreachable
*/
func (handler *Handler) refreshDimensions(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.IntID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Image"))
		return
	}

	provided, err := decodeDimensions(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	image, err := handler.service.RefreshDimensions(request.Context(), id, provided)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, image)
}

// decodeDimensions reads an optional JSON body; an empty body yields nil.
func decodeDimensions(writer http.ResponseWriter, request *http.Request) (*Dimensions, error) {
	if request.Body == nil || request.ContentLength == 0 {
		return nil, nil
	}

	var dimensions Dimensions
	if err := requestutil.DecodeJSON(writer, request, &dimensions); err != nil {
		return nil, err
	}
	return &dimensions, nil
}
