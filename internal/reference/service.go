// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"strings"

	"github.com/taibuivan/sophia/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates read access to reference data.
type Service struct {
	repo Repository
}

// NewService constructs a new reference [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Vocabulary Methods

/*
ListTerms returns every entry of the vocabulary named by slug.

Parameters:
  - context: context.Context
  - slug: string (e.g. "languages", "writing-systems")

Returns:
  - []Term: Vocabulary entries
  - error: apperr.NotFound for an unknown vocabulary, or storage errors
*/
func (service *Service) ListTerms(context context.Context, slug string) ([]Term, error) {
	kind, ok := LookupKind(slug)
	if !ok {
		return nil, apperr.NotFound("Vocabulary")
	}
	return service.repo.ListTerms(context, kind.Table)
}

// GetTerm returns one entry of the vocabulary named by slug.
func (service *Service) GetTerm(context context.Context, slug string, id int) (*Term, error) {
	kind, ok := LookupKind(slug)
	if !ok {
		return nil, apperr.NotFound("Vocabulary")
	}
	return service.repo.GetTerm(context, kind.Table, id)
}

// # People Methods

/*
ListHistoricalPersons returns a paginated list of persons matching filter.

Parameters:
  - context: context.Context
  - filter: PersonFilter (Query is trimmed)
  - limit, offset: int

Returns:
  - []*HistoricalPerson: Paginated persons
  - int: Total matching count
  - error: Storage errors
*/
func (service *Service) ListHistoricalPersons(context context.Context, filter PersonFilter, limit, offset int) ([]*HistoricalPerson, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.ListHistoricalPersons(context, filter, limit, offset)
}

// GetHistoricalPerson returns a person by id.
func (service *Service) GetHistoricalPerson(context context.Context, id int) (*HistoricalPerson, error) {
	return service.repo.GetHistoricalPerson(context, id)
}

// ListAuthors returns every catalogue author.
func (service *Service) ListAuthors(context context.Context) ([]*Author, error) {
	return service.repo.ListAuthors(context)
}

// ListBibliography returns every bibliography item.
func (service *Service) ListBibliography(context context.Context) ([]*BibliographyItem, error) {
	return service.repo.ListBibliography(context)
}
