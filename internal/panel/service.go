// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package panel

import (
	"context"
	"strings"

	"github.com/taibuivan/sophia/pkg/slug"
)

// # Service Layer

// Service orchestrates read access to panels.
type Service struct {
	repo Repository
}

// NewService constructs a new panel [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

/*
ListPanels returns a paginated list of panels with their counts.

Description: The room filter accepts either the stored room name or its URL
slug ("St. Michael's Chapel" or "st-michael-s-chapel"). A room that matches
nothing yields an empty page rather than an error.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Panel: Paginated panels
  - int: Total matching count
  - error: Storage errors
*/
func (service *Service) ListPanels(context context.Context, filter Filter, limit, offset int) ([]*Panel, int, error) {
	filter.Room = strings.TrimSpace(filter.Room)
	filter.TitlePrefix = strings.TrimSpace(filter.TitlePrefix)

	if filter.Room != "" {
		name, found, err := service.resolveRoom(context, filter.Room)
		if err != nil {
			return nil, 0, err
		}
		if !found {
			return []*Panel{}, 0, nil
		}
		filter.Room = name
	}

	return service.repo.List(context, filter, limit, offset)
}

// resolveRoom maps a room name or slug to the stored room name.
func (service *Service) resolveRoom(context context.Context, room string) (string, bool, error) {
	rooms, err := service.ListRooms(context)
	if err != nil {
		return "", false, err
	}

	wanted := slug.From(room)
	for _, candidate := range rooms {
		if candidate.Name == room || candidate.Slug == wanted {
			return candidate.Name, true, nil
		}
	}
	return "", false, nil
}

// GetPanel returns a panel with its geometry and counts.
func (service *Service) GetPanel(context context.Context, id int) (*Panel, error) {
	return service.repo.FindByID(context, id)
}

// ListRooms returns every named room with its slug and panel count.
func (service *Service) ListRooms(context context.Context) ([]Room, error) {
	rooms, err := service.repo.ListRooms(context)
	if err != nil {
		return nil, err
	}

	for i := range rooms {
		rooms[i].Slug = slug.From(rooms[i].Name)
	}
	return rooms, nil
}
