// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/metrics"
	"github.com/taibuivan/sophia/internal/platform/validate"
	"github.com/taibuivan/sophia/pkg/uuid"
)

// # Service Layer

// Outcomes recorded for info.json lookups.
const (
	fetchCached   = "cached"
	fetchFetched  = "fetched"
	fetchFailed   = "failed"
	fetchProvided = "provided"
)

// DimensionFetcher resolves the pixel size of an IIIF file.
type DimensionFetcher interface {
	FetchDimensions(context context.Context, file string) (Dimensions, error)
}

// Service orchestrates image lookups and dimension refreshes.
type Service struct {
	repo    Repository
	urls    URLBuilder
	fetcher DimensionFetcher
	cache   DimensionCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService constructs a new image [Service]. cache and recorder may be nil.
func NewService(repo Repository, urls URLBuilder, fetcher DimensionFetcher, cache DimensionCache, recorder *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		urls:    urls,
		fetcher: fetcher,
		cache:   cache,
		metrics: recorder,
		logger:  logger,
	}
}

// # Lookups

/*
ListImages returns a page of images with their IIIF URLs.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Image: Decorated images
  - int: Total matching count
  - error: Storage errors
*/
func (service *Service) ListImages(context context.Context, filter Filter, limit, offset int) ([]*Image, int, error) {
	images, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, image := range images {
		service.urls.Decorate(image)
	}
	return images, total, nil
}

/*
GetImage fetches a single image by numeric id or UUID.

Parameters:
  - context: context.Context
  - identifier: string (Primary key or UUID)

Returns:
  - *Image: The decorated image
  - error: apperr.NotFound for malformed or unknown identifiers
*/
func (service *Service) GetImage(context context.Context, identifier string) (*Image, error) {
	var image *Image
	var err error

	// Identity format detection
	if canonical, ok := uuid.Canonical(identifier); ok {
		image, err = service.repo.FindByUUID(context, canonical)
	} else {
		id, parseErr := strconv.Atoi(identifier)
		if parseErr != nil || id <= 0 {
			return nil, apperr.NotFound("Image")
		}
		image, err = service.repo.FindByID(context, id)
	}

	if err != nil {
		return nil, err
	}

	service.urls.Decorate(image)
	return image, nil
}

// # Dimensions

/*
RefreshDimensions stores the pixel size of an image.

Description: When provided is set it is stored as-is. Otherwise the size is
read from the dimension cache, or from the IIIF server's info.json on a miss,
and the result is cached. Cache failures are logged and never fail the call.

Parameters:
  - context: context.Context
  - id: int
  - provided: *Dimensions (Optional manual override)

Returns:
  - *Image: The updated, decorated image
  - error: apperr.NotFound, apperr.Unprocessable when the image has no IIIF file,
    apperr.BadGateway when the IIIF server cannot be read
*/
func (service *Service) RefreshDimensions(context context.Context, id int, provided *Dimensions) (*Image, error) {
	image, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	var dimensions Dimensions
	if provided != nil {
		if err := validateDimensions(*provided); err != nil {
			return nil, err
		}
		dimensions = *provided
		service.metrics.CountIIIFFetch(fetchProvided)
	} else {
		if image.IIIFFile == nil || *image.IIIFFile == "" {
			return nil, apperr.Unprocessable("Image has no IIIF file")
		}
		if dimensions, err = service.resolve(context, *image.IIIFFile); err != nil {
			return nil, err
		}
	}

	if err := service.repo.SetDimensions(context, id, dimensions); err != nil {
		return nil, err
	}

	image.Width, image.Height = &dimensions.Width, &dimensions.Height
	service.urls.Decorate(image)

	service.logger.InfoContext(context, "image_dimensions_updated",
		slog.Int("image_id", id),
		slog.Int("width", dimensions.Width),
		slog.Int("height", dimensions.Height),
	)

	return image, nil
}

// resolve reads dimensions from the cache, falling back to the IIIF server.
func (service *Service) resolve(context context.Context, file string) (Dimensions, error) {
	if service.cache != nil {
		cached, found, err := service.cache.Get(context, file)
		if err != nil {
			service.logger.WarnContext(context, "image_dimensions_cache_read_failed",
				slog.String("file", file),
				slog.Any("error", err),
			)
		}
		if found {
			service.metrics.CountIIIFFetch(fetchCached)
			return cached, nil
		}
	}

	dimensions, err := service.fetcher.FetchDimensions(context, file)
	if err != nil {
		service.metrics.CountIIIFFetch(fetchFailed)
		service.logger.ErrorContext(context, "iiif_info_fetch_failed",
			slog.String("file", file),
			slog.Any("error", err),
		)

		if context.Err() != nil {
			return Dimensions{}, apperr.ServiceUnavailable("Request cancelled")
		}
		return Dimensions{}, apperr.BadGateway("Could not read image information from the IIIF server", err)
	}
	service.metrics.CountIIIFFetch(fetchFetched)

	if service.cache != nil {
		if err := service.cache.Set(context, file, dimensions); err != nil {
			service.logger.WarnContext(context, "image_dimensions_cache_write_failed",
				slog.String("file", file),
				slog.Any("error", err),
			)
		} else {
			service.logger.DebugContext(context, "image_dimensions_cached", slog.String("file", file))
		}
	}

	return dimensions, nil
}

// validateDimensions bounds a manually supplied size to what an IIIF server can serve.
func validateDimensions(dimensions Dimensions) error {
	validator := &validate.Validator{}
	validator.
		Range(FieldWidth, dimensions.Width, 1, MaxDimension).
		Range(FieldHeight, dimensions.Height, 1, MaxDimension)
	return validator.Err()
}
