// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/sophia/internal/platform/database/schema"
	"github.com/taibuivan/sophia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListTerms retrieves a full vocabulary.

Description: All vocabulary tables share the (id, text, text_ukr) layout, so a
single query template serves every [Kind].

Parameters:
  - context: context.Context
  - table: schema.VocabularyTable

Returns:
  - []Term: Entries ordered by text, then id
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListTerms(context context.Context, table schema.VocabularyTable) ([]Term, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC NULLS LAST, %s ASC`,
		table.ID, table.Text, table.TextUkr, table.Table, table.Text, table.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_terms")
	}
	defer rows.Close()

	terms := make([]Term, 0)
	for rows.Next() {
		var term Term
		if err := rows.Scan(&term.ID, &term.Text, &term.TextUkr); err != nil {
			return nil, dberr.Wrap(err, "scan_term")
		}
		terms = append(terms, term)
	}

	return terms, dberr.Wrap(rows.Err(), "list_terms")
}

// GetTerm fetches one vocabulary entry by id.
func (repository *PostgresRepository) GetTerm(context context.Context, table schema.VocabularyTable, id int) (*Term, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Text, table.TextUkr, table.Table, table.ID)

	term := &Term{}
	if err := repository.db.QueryRow(context, query, id).Scan(&term.ID, &term.Text, &term.TextUkr); err != nil {
		return nil, dberr.Wrap(err, "get_term")
	}
	return term, nil
}

/*
ListHistoricalPersons performs a substring search over person names.

Description: Uses ILIKE against both the English and Ukrainian name columns,
returning both the entity slice and a total count for pagination metadata.

Parameters:
  - context: context.Context
  - filter: PersonFilter (Search parameters)
  - limit, offset: int (Pagination bounds)

Returns:
  - []*HistoricalPerson: Paginated results
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *PostgresRepository) ListHistoricalPersons(context context.Context, filter PersonFilter, limit, offset int) ([]*HistoricalPerson, int, error) {
	person := schema.HistoricalPerson

	// Base queries for selection and counting
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE TRUE`,
		person.ID, person.Name, person.NameUkr, person.Information, person.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE TRUE`, person.Table)

	args := []any{}

	// Apply filter parameters
	if filter.Query != "" {
		condition := fmt.Sprintf(` AND (%s ILIKE $1 OR %s ILIKE $1)`, person.Name, person.NameUkr)
		query += condition
		countQuery += condition
		args = append(args, "%"+filter.Query+"%")
	}

	// Retrieve total count for metadata
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_historical_persons")
	}

	// Append ordering and pagination bounds
	query += fmt.Sprintf(` ORDER BY %s ASC NULLS LAST, %s ASC LIMIT $%s OFFSET $%s`,
		person.Name, person.ID, strconv.Itoa(len(args)+1), strconv.Itoa(len(args)+2))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_historical_persons")
	}
	defer rows.Close()

	persons := make([]*HistoricalPerson, 0)
	for rows.Next() {
		p := &HistoricalPerson{}
		if err := rows.Scan(&p.ID, &p.Name, &p.NameUkr, &p.Information); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_historical_person")
		}
		persons = append(persons, p)
	}

	return persons, total, dberr.Wrap(rows.Err(), "list_historical_persons")
}

// GetHistoricalPerson retrieves a single person by its primary key.
func (repository *PostgresRepository) GetHistoricalPerson(context context.Context, id int) (*HistoricalPerson, error) {
	person := schema.HistoricalPerson
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		person.ID, person.Name, person.NameUkr, person.Information, person.Table, person.ID)

	p := &HistoricalPerson{}
	if err := repository.db.QueryRow(context, query, id).Scan(&p.ID, &p.Name, &p.NameUkr, &p.Information); err != nil {
		return nil, dberr.Wrap(err, "get_historical_person")
	}
	return p, nil
}

// ListAuthors retrieves every author.
func (repository *PostgresRepository) ListAuthors(context context.Context) ([]*Author, error) {
	author := schema.Author
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s ORDER BY %s ASC NULLS LAST, %s ASC NULLS LAST, %s ASC`,
		author.ID, author.Firstname, author.Lastname, author.FirstnameUkr, author.LastnameUkr, author.Table,
		author.Lastname, author.Firstname, author.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	authors := make([]*Author, 0)
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.Firstname, &a.Lastname, &a.FirstnameUkr, &a.LastnameUkr); err != nil {
			return nil, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, dberr.Wrap(rows.Err(), "list_authors")
}

// ListBibliography retrieves every bibliography item.
func (repository *PostgresRepository) ListBibliography(context context.Context) ([]*BibliographyItem, error) {
	item := schema.BibliographyItem
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC NULLS LAST, %s ASC`,
		item.ID, item.Title, item.Reference, item.Table, item.Title, item.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_bibliography")
	}
	defer rows.Close()

	items := make([]*BibliographyItem, 0)
	for rows.Next() {
		b := &BibliographyItem{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Reference); err != nil {
			return nil, dberr.Wrap(err, "scan_bibliography_item")
		}
		items = append(items, b)
	}

	return items, dberr.Wrap(rows.Err(), "list_bibliography")
}
