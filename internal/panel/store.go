// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package panel

import "context"

// # Panel Data Access

// Repository defines the read contract for panels.
type Repository interface {

	/*
		List returns a filtered, paginated slice of panels with their counts.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Panel: Panels ordered by title, without geometry
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Panel, int, error)

	/*
		FindByID returns a panel with its GeoJSON geometry and counts.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Panel: The panel
		  - error: apperr NotFound if missing
	*/
	FindByID(context context.Context, id int) (*Panel, error)

	// ListRooms returns every named room with the number of panels it holds.
	ListRooms(context context.Context) ([]Room, error)
}
