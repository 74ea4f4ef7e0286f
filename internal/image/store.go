// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import "context"

// # Image Data Access

// Repository defines the data access contract for images.
type Repository interface {

	/*
		List returns a filtered, paginated slice of images and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Image: Images ordered by id
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Image, int, error)

	// FindByID returns the image with the given primary key.
	FindByID(context context.Context, id int) (*Image, error)

	// FindByUUID returns the image with the given public UUID.
	FindByUUID(context context.Context, uuid string) (*Image, error)

	/*
		SetDimensions stores the pixel size of an image.

		Parameters:
		  - context: context.Context
		  - id: int
		  - dimensions: Dimensions

		Returns:
		  - error: apperr NotFound if the image does not exist
	*/
	SetDimensions(context context.Context, id int, dimensions Dimensions) error
}
