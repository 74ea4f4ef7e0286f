// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import "context"

// # Inscription Data Access

// Repository defines the data access contract for the inscription catalogue.
//
// Only published inscriptions are ever returned.
type Repository interface {
	CandidateSource

	/*
		Search returns a paginated slice of inscriptions matching predicate and the total count.

		Parameters:
		  - context: context.Context
		  - predicate: Predicate (nil matches every record)
		  - limit, offset: int

		Returns:
		  - []*Summary: Matches ordered by panel title, inscription title, then id
		  - int: Total count of matching records
		  - error: Database retrieval failures
	*/
	Search(context context.Context, predicate Predicate, limit, offset int) ([]*Summary, int, error)

	/*
		FindByID returns the fully resolved inscription with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Inscription: The record with every vocabulary and relation resolved
		  - error: apperr NotFound if missing or unpublished
	*/
	FindByID(context context.Context, id int) (*Inscription, error)

	/*
		Memberships lists the classification labels held by every record matching predicate.

		Parameters:
		  - context: context.Context
		  - predicate: Predicate

		Returns:
		  - []Membership: One row per (record, dimension, value)
		  - error: Database retrieval failures
	*/
	Memberships(context context.Context, predicate Predicate) ([]Membership, error)

	// YearSpans lists the dating range of every record matching predicate.
	YearSpans(context context.Context, predicate Predicate) ([]YearSpan, error)

	/*
		Export streams fully resolved records matching predicate in id order.

		Parameters:
		  - context: context.Context
		  - predicate: Predicate
		  - visit: func(*Inscription) error (A returned error aborts the stream)

		Returns:
		  - error: Database failures or the error returned by visit
	*/
	Export(context context.Context, predicate Predicate, visit func(*Inscription) error) error
}
