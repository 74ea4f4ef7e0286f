// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"

	"github.com/taibuivan/sophia/internal/platform/database/schema"
)

// # Reference Data Access

// Repository defines the read contract for vocabularies and scholarly records.
type Repository interface {

	/*
		ListTerms returns every entry of a vocabulary ordered by text.

		Parameters:
		  - context: context.Context
		  - table: schema.VocabularyTable (Backing table of the vocabulary)

		Returns:
		  - []Term: Vocabulary entries
		  - error: Database retrieval failures
	*/
	ListTerms(context context.Context, table schema.VocabularyTable) ([]Term, error)

	/*
		GetTerm returns a single vocabulary entry.

		Parameters:
		  - context: context.Context
		  - table: schema.VocabularyTable
		  - id: int

		Returns:
		  - *Term: The entry
		  - error: ErrNotFound if missing
	*/
	GetTerm(context context.Context, table schema.VocabularyTable, id int) (*Term, error)

	/*
		ListHistoricalPersons returns a filtered, paginated slice of persons and the total count.

		Parameters:
		  - context: context.Context
		  - filter: PersonFilter
		  - limit, offset: int

		Returns:
		  - []*HistoricalPerson: Matching persons ordered by name
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	ListHistoricalPersons(context context.Context, filter PersonFilter, limit, offset int) ([]*HistoricalPerson, int, error)

	/*
		GetHistoricalPerson returns the person with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *HistoricalPerson: The person with biographical information
		  - error: ErrNotFound if missing
	*/
	GetHistoricalPerson(context context.Context, id int) (*HistoricalPerson, error)

	// ListAuthors returns every catalogue author ordered by last name.
	ListAuthors(context context.Context) ([]*Author, error)

	// ListBibliography returns every bibliography item ordered by title.
	ListBibliography(context context.Context) ([]*BibliographyItem, error)
}
