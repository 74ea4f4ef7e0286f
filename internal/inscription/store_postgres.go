// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package inscription provides the PostgreSQL implementation of the catalogue's data access.

It relies on a few PostgreSQL features to keep every operation to a single round-trip:
  - Window Functions: COUNT(*) OVER() returns the total alongside a page of results.
  - JSON Aggregation: json_agg sub-queries resolve many-to-many relations per row.
  - Regular Expressions: regexp_replace strips editor markup before substring matching.
  - Cursors: autocomplete streams rows and closes the cursor as soon as enough values are known.
*/

package inscription

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sophia/internal/platform/database/schema"
	"github.com/taibuivan/sophia/internal/platform/dberr"
	"github.com/taibuivan/sophia/internal/reference"
)

// # PostgreSQL Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed inscription store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Aliases of the vocabulary joins used by list and detail queries.
const (
	aliasType          = "vt"
	aliasLanguage      = "vl"
	aliasWritingSystem = "vw"
	aliasInscriber     = "hp"
)

// # Query Fragments

// baseFrom is the FROM clause shared by every inscription query.
func baseFrom() string {
	return fmt.Sprintf(`%s %s LEFT JOIN %s %s ON %s.%s = %s.%s`,
		schema.Inscription.Table, aliasInscription,
		schema.Panel.Table, aliasPanel,
		aliasPanel, schema.Panel.ID, aliasInscription, schema.Inscription.PanelID,
	)
}

// visibleWhere restricts a query to published inscriptions matching condition.
func visibleWhere(condition string) string {
	return fmt.Sprintf(`%s.%s AND %s`, aliasInscription, schema.Inscription.Published, condition)
}

// vocabularyJoin left joins a vocabulary table on an inscription foreign key.
func vocabularyJoin(table schema.VocabularyTable, alias, foreignKey string) string {
	return fmt.Sprintf(` LEFT JOIN %s %s ON %s.%s = %s.%s`,
		table.Table, alias, alias, table.ID, aliasInscription, foreignKey)
}

// vocabularyColumns selects the id and both labels of a joined vocabulary.
func vocabularyColumns(table schema.VocabularyTable, alias string) string {
	return fmt.Sprintf(`%[1]s.%[2]s, %[1]s.%[3]s, %[1]s.%[4]s`, alias, table.ID, table.Text, table.TextUkr)
}

// summaryJoins joins the vocabularies shown in list results.
func summaryJoins() string {
	return vocabularyJoin(schema.InscriptionType, aliasType, schema.Inscription.TypeOfInscriptionID) +
		vocabularyJoin(schema.Language, aliasLanguage, schema.Inscription.LanguageID) +
		vocabularyJoin(schema.WritingSystem, aliasWritingSystem, schema.Inscription.WritingSystemID)
}

// summaryColumns selects the fields scanned by [scanSummary].
func summaryColumns() string {
	return fmt.Sprintf(`%[1]s.%[2]s, %[1]s.%[3]s, %[4]s.%[5]s, %[4]s.%[6]s, %[4]s.%[7]s, %[8]s, %[9]s, %[10]s, %[1]s.%[11]s, %[1]s.%[12]s`,
		aliasInscription, schema.Inscription.ID, schema.Inscription.Title,
		aliasPanel, schema.Panel.ID, schema.Panel.Title, schema.Panel.Room,
		vocabularyColumns(schema.InscriptionType, aliasType),
		vocabularyColumns(schema.Language, aliasLanguage),
		vocabularyColumns(schema.WritingSystem, aliasWritingSystem),
		schema.Inscription.MinYear, schema.Inscription.MaxYear,
	)
}

// termsJSON aggregates the vocabulary entries linked through a junction table.
func termsJSON(table schema.VocabularyTable, junction schema.JunctionTable) string {
	return fmt.Sprintf(`COALESCE((
		SELECT json_agg(json_build_object('id', v.%[1]s, 'text', v.%[2]s, 'text_ukr', v.%[3]s) ORDER BY v.%[2]s, v.%[1]s)
		FROM %[4]s v JOIN %[5]s jt ON jt.%[6]s = v.%[1]s
		WHERE jt.%[7]s = %[8]s.%[9]s
	), '[]')`,
		table.ID, table.Text, table.TextUkr,
		table.Table, junction.Table, junction.TargetID,
		junction.OwnerID, aliasInscription, schema.Inscription.ID,
	)
}

// relatedJSON aggregates arbitrary related rows built by object, ordered by orderBy.
func relatedJSON(table string, idColumn string, junction schema.JunctionTable, object, orderBy string) string {
	return fmt.Sprintf(`COALESCE((
		SELECT json_agg(%[1]s ORDER BY %[2]s)
		FROM %[3]s v JOIN %[4]s jt ON jt.%[5]s = v.%[6]s
		WHERE jt.%[7]s = %[8]s.%[9]s
	), '[]')`,
		object, orderBy,
		table, junction.Table, junction.TargetID, idColumn,
		junction.OwnerID, aliasInscription, schema.Inscription.ID,
	)
}

// localizedJSON aggregates the per-language texts of table with their language.
func localizedJSON(table schema.InscriptionTextTable) string {
	language := schema.Language

	return fmt.Sprintf(`COALESCE((
		SELECT json_agg(json_build_object(
			'id', lt.%[1]s,
			'language', CASE WHEN l.%[2]s IS NULL THEN NULL ELSE json_build_object('id', l.%[2]s, 'text', l.%[3]s, 'text_ukr', l.%[4]s) END,
			'text', lt.%[5]s
		) ORDER BY l.%[3]s NULLS LAST, lt.%[1]s)
		FROM %[6]s lt LEFT JOIN %[7]s l ON l.%[2]s = lt.%[8]s
		WHERE lt.%[9]s = %[10]s.%[11]s
	), '[]')`,
		table.ID, language.ID, language.Text, language.TextUkr, table.Text,
		table.Table, language.Table, table.LanguageID,
		table.InscriptionID, aliasInscription, schema.Inscription.ID,
	)
}

// detailQuery selects fully resolved inscriptions matching condition, in id order.
func detailQuery(condition string) string {
	person := schema.HistoricalPerson
	author := schema.Author
	item := schema.BibliographyItem

	columns := []string{
		summaryColumns(),
		fmt.Sprintf(`%s.%s, %s.%s, %s.%s, %s.%s`,
			aliasInscription, schema.Inscription.PositionOnSurface,
			aliasInscription, schema.Inscription.Elevation,
			aliasInscription, schema.Inscription.Height,
			aliasInscription, schema.Inscription.Width),
	}

	for _, column := range schema.Inscription.RichTextColumns() {
		columns = append(columns, aliasInscription+"."+column)
	}

	columns = append(columns,
		fmt.Sprintf(`%[1]s.%[2]s, %[1]s.%[3]s, %[1]s.%[4]s, %[1]s.%[5]s`,
			aliasInscriber, person.ID, person.Name, person.NameUkr, person.Information),
		termsJSON(schema.Genre, schema.InscriptionGenre),
		termsJSON(schema.Tag, schema.InscriptionTag),
		relatedJSON(person.Table, person.ID, schema.InscriptionMentionedPerson,
			fmt.Sprintf(`json_build_object('id', v.%s, 'name', v.%s, 'name_ukr', v.%s)`, person.ID, person.Name, person.NameUkr),
			fmt.Sprintf(`v.%s, v.%s`, person.Name, person.ID)),
		termsJSON(schema.Condition, schema.InscriptionCondition),
		termsJSON(schema.Alignment, schema.InscriptionAlignment),
		termsJSON(schema.DatingCriterion, schema.InscriptionDatingCriterion),
		termsJSON(schema.ExtraAlphabeticalSign, schema.InscriptionExtraAlphabeticalSign),
		relatedJSON(item.Table, item.ID, schema.InscriptionBibliography,
			fmt.Sprintf(`json_build_object('id', v.%s, 'title', v.%s, 'reference', v.%s)`, item.ID, item.Title, item.Reference),
			fmt.Sprintf(`v.%s, v.%s`, item.Title, item.ID)),
		relatedJSON(author.Table, author.ID, schema.InscriptionAuthor,
			fmt.Sprintf(`json_build_object('id', v.%s, 'firstname', v.%s, 'lastname', v.%s, 'firstname_ukr', v.%s, 'lastname_ukr', v.%s)`,
				author.ID, author.Firstname, author.Lastname, author.FirstnameUkr, author.LastnameUkr),
			fmt.Sprintf(`v.%s, v.%s`, author.Lastname, author.ID)),
		localizedJSON(schema.Translation),
		localizedJSON(schema.Description),
		fmt.Sprintf(`%s.%s, %s.%s`,
			aliasInscription, schema.Inscription.CreatedAt,
			aliasInscription, schema.Inscription.UpdatedAt),
	)

	return fmt.Sprintf(`SELECT %s FROM %s%s LEFT JOIN %s %s ON %s.%s = %s.%s WHERE %s ORDER BY %s.%s`,
		strings.Join(columns, ",\n\t\t"),
		baseFrom(), summaryJoins(),
		person.Table, aliasInscriber, aliasInscriber, person.ID, aliasInscription, schema.Inscription.InscriberID,
		visibleWhere(condition),
		aliasInscription, schema.Inscription.ID,
	)
}

// # Row Scanning

// summaryRow holds the nullable columns selected by [summaryColumns].
type summaryRow struct {
	panelID                      *int
	panelTitle, panelRoom        *string
	typeID, languageID, scriptID *int
	typeText, typeTextUkr        *string
	languageText, languageUkr    *string
	scriptText, scriptTextUkr    *string
}

// targets returns the scan destinations in column order.
func (row *summaryRow) targets(summary *Summary) []any {
	return []any{
		&summary.ID, &summary.Title,
		&row.panelID, &row.panelTitle, &row.panelRoom,
		&row.typeID, &row.typeText, &row.typeTextUkr,
		&row.languageID, &row.languageText, &row.languageUkr,
		&row.scriptID, &row.scriptText, &row.scriptTextUkr,
		&summary.MinYear, &summary.MaxYear,
	}
}

// resolve copies the joined values into summary.
func (row *summaryRow) resolve(summary *Summary) {
	if row.panelID != nil {
		summary.Panel = &PanelRef{ID: *row.panelID, Title: row.panelTitle, Room: row.panelRoom}
	}
	summary.TypeOfInscription = term(row.typeID, row.typeText, row.typeTextUkr)
	summary.Language = term(row.languageID, row.languageText, row.languageUkr)
	summary.WritingSystem = term(row.scriptID, row.scriptText, row.scriptTextUkr)
}

// term builds a vocabulary reference from a LEFT JOIN; a NULL id yields nil.
func term(id *int, text, textUkr *string) *reference.Term {
	if id == nil {
		return nil
	}
	return &reference.Term{ID: *id, Text: text, TextUkr: textUkr}
}

// scanDetail reads one row of [detailQuery].
func scanDetail(rows pgx.Row) (*Inscription, error) {
	inscription := &Inscription{}
	var row summaryRow

	var inscriberID *int
	var inscriberName, inscriberNameUkr, inscriberInformation *string

	var genres, tags, persons, conditions, alignments, criteria, signs, bibliography, authors []byte
	var translations, descriptions []byte

	targets := row.targets(&inscription.Summary)
	targets = append(targets,
		&inscription.PositionOnSurface, &inscription.Elevation, &inscription.Height, &inscription.Width,
		&inscription.Transcription, &inscription.InterpretativeEdition, &inscription.Romanisation,
		&inscription.TranslationEng, &inscription.TranslationUkr, &inscription.CommentsEng, &inscription.CommentsUkr,
		&inscriberID, &inscriberName, &inscriberNameUkr, &inscriberInformation,
		&genres, &tags, &persons, &conditions, &alignments, &criteria, &signs, &bibliography, &authors,
		&translations, &descriptions,
		&inscription.CreatedAt, &inscription.UpdatedAt,
	)

	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	row.resolve(&inscription.Summary)
	if inscriberID != nil {
		inscription.Inscriber = &reference.HistoricalPerson{
			ID: *inscriberID, Name: inscriberName, NameUkr: inscriberNameUkr, Information: inscriberInformation,
		}
	}

	// Unmarshal aggregated relations
	for _, relation := range []struct {
		raw    []byte
		target any
	}{
		{genres, &inscription.Genres},
		{tags, &inscription.Tags},
		{persons, &inscription.MentionedPersons},
		{conditions, &inscription.Conditions},
		{alignments, &inscription.Alignments},
		{criteria, &inscription.DatingCriteria},
		{signs, &inscription.ExtraAlphabeticalSigns},
		{bibliography, &inscription.Bibliography},
		{authors, &inscription.Authors},
		{translations, &inscription.Translations},
		{descriptions, &inscription.Descriptions},
	} {
		if err := json.Unmarshal(relation.raw, relation.target); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal relation: %w", err)
		}
	}

	return inscription, nil
}

// # Repository Implementation

/*
Search returns a page of inscription summaries and the total count.

Description: The predicate is compiled into the WHERE clause. The total comes
from COUNT(*) OVER(); when the requested page lies past the end no row carries
it, so a separate count is issued.

Parameters:
  - context: context.Context
  - predicate: Predicate
  - limit, offset: int

Returns:
  - []*Summary: The page, ordered by panel title, inscription title, then id
  - int: Total count matching predicate
  - error: Database execution errors
*/
func (repository *PostgresRepository) Search(context context.Context, predicate Predicate, limit, offset int) ([]*Summary, int, error) {
	condition, args := Compile(predicate)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s%s WHERE %s`,
		summaryColumns(), baseFrom(), summaryJoins(), visibleWhere(condition)))

	// Panel title, then inscription title, then id keeps pages stable
	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY %s.%s ASC NULLS LAST, %s.%s ASC NULLS LAST, %s.%s ASC`,
		aliasPanel, schema.Panel.Title, aliasInscription, schema.Inscription.Title, aliasInscription, schema.Inscription.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_inscriptions")
	}
	defer rows.Close()

	summaries := make([]*Summary, 0, limit)
	var total int

	for rows.Next() {
		summary := &Summary{}
		var row summaryRow

		if err := rows.Scan(append(row.targets(summary), &total)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_inscription_summary")
		}

		row.resolve(summary)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "search_inscriptions")
	}

	if len(summaries) == 0 && offset > 0 {
		total, err = repository.count(context, predicate)
		if err != nil {
			return nil, 0, err
		}
	}

	return summaries, total, nil
}

// count returns the number of visible records matching predicate.
func (repository *PostgresRepository) count(context context.Context, predicate Predicate) (int, error) {
	condition, args := Compile(predicate)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, baseFrom(), visibleWhere(condition))

	var total int
	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_inscriptions")
	}
	return total, nil
}

/*
FindByID retrieves a fully resolved inscription.

Description: Vocabularies are joined, many-to-many relations aggregated with
json_agg. Unpublished records are reported as missing.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Inscription: The hydrated record
  - error: apperr NotFound, or internal errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Inscription, error) {
	condition, args := Compile(Equals{Field: fieldID, Value: id})

	inscription, err := scanDetail(repository.db.QueryRow(context, detailQuery(condition), args...))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find_inscription", "Inscription")
	}
	return inscription, nil
}

/*
StreamCandidates streams (record id, raw value) pairs of one field.

Description: Fields on the inscription or its panel are read from the base
query. Fields behind a relation are read from the related rows themselves,
joined back to their inscription, so the predicate is compiled in direct mode.
Rows come in ascending record id order; the cursor is closed as soon as visit
returns false.
*/
func (repository *PostgresRepository) StreamCandidates(context context.Context, field *Field, predicate Predicate, visit func(Candidate) bool) error {
	condition, args := CompileDirect(predicate)

	var query string
	if field.Related != nil {
		query = fmt.Sprintf(`SELECT %[1]s, %[2]s FROM %[3]s JOIN %[4]s %[5]s ON %[5]s.%[6]s = %[1]s LEFT JOIN %[7]s %[8]s ON %[8]s.%[9]s = %[5]s.%[10]s WHERE %[11]s AND %[2]s IS NOT NULL ORDER BY %[1]s`,
			field.Related.Link, field.Expr(), field.Related.From,
			schema.Inscription.Table, aliasInscription, schema.Inscription.ID,
			schema.Panel.Table, aliasPanel, schema.Panel.ID, schema.Inscription.PanelID,
			visibleWhere(condition),
		)
	} else {
		query = fmt.Sprintf(`SELECT %s.%s, %s FROM %s WHERE %s AND %s IS NOT NULL ORDER BY %s.%s`,
			aliasInscription, schema.Inscription.ID, field.Expr(), baseFrom(),
			visibleWhere(condition), field.Expr(),
			aliasInscription, schema.Inscription.ID,
		)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "stream_candidates")
	}
	defer rows.Close()

	for rows.Next() {
		var candidate Candidate
		if err := rows.Scan(&candidate.ID, &candidate.Value); err != nil {
			return dberr.Wrap(err, "scan_candidate")
		}
		if !visit(candidate) {
			return nil
		}
	}

	return dberr.Wrap(rows.Err(), "stream_candidates")
}

/*
Memberships lists classification labels of the matching records.

Description: The matching ids are computed once in a CTE, then each dimension
contributes its (record, label) rows through UNION ALL. Single-valued
dimensions join the inscription's foreign key; genres and tags go through their
junction tables.
*/
func (repository *PostgresRepository) Memberships(context context.Context, predicate Predicate) ([]Membership, error) {
	condition, args := Compile(predicate)

	matched := fmt.Sprintf(`WITH matched AS (SELECT %[1]s.%[2]s AS id, %[1]s.%[3]s AS type_id, %[1]s.%[4]s AS language_id, %[1]s.%[5]s AS script_id FROM %[6]s WHERE %[7]s)`,
		aliasInscription, schema.Inscription.ID,
		schema.Inscription.TypeOfInscriptionID, schema.Inscription.LanguageID, schema.Inscription.WritingSystemID,
		baseFrom(), visibleWhere(condition),
	)

	single := func(dimension Dimension, table schema.VocabularyTable, column string) string {
		return fmt.Sprintf(`SELECT '%s', m.id, v.%s, v.%s FROM matched m JOIN %s v ON v.%s = m.%s`,
			dimension, table.Text, table.TextUkr, table.Table, table.ID, column)
	}
	multi := func(dimension Dimension, table schema.VocabularyTable, junction schema.JunctionTable) string {
		return fmt.Sprintf(`SELECT '%s', m.id, v.%s, v.%s FROM matched m JOIN %s jt ON jt.%s = m.id JOIN %s v ON v.%s = jt.%s`,
			dimension, table.Text, table.TextUkr, junction.Table, junction.OwnerID, table.Table, table.ID, junction.TargetID)
	}

	query := matched + "\n" + strings.Join([]string{
		single(DimensionTypeOfInscription, schema.InscriptionType, "type_id"),
		single(DimensionWritingSystem, schema.WritingSystem, "script_id"),
		single(DimensionLanguage, schema.Language, "language_id"),
		multi(DimensionTextualGenre, schema.Genre, schema.InscriptionGenre),
		multi(DimensionPictorialDescription, schema.Tag, schema.InscriptionTag),
	}, "\nUNION ALL\n")

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_memberships")
	}
	defer rows.Close()

	memberships := make([]Membership, 0)
	for rows.Next() {
		var membership Membership
		var dimension string
		if err := rows.Scan(&dimension, &membership.RecordID, &membership.Label, &membership.LabelUkr); err != nil {
			return nil, dberr.Wrap(err, "scan_membership")
		}
		membership.Dimension = Dimension(dimension)
		memberships = append(memberships, membership)
	}

	return memberships, dberr.Wrap(rows.Err(), "list_memberships")
}

// YearSpans lists the dating ranges of the matching records.
func (repository *PostgresRepository) YearSpans(context context.Context, predicate Predicate) ([]YearSpan, error) {
	condition, args := Compile(predicate)
	query := fmt.Sprintf(`SELECT %[1]s.%[2]s, %[1]s.%[3]s, %[1]s.%[4]s FROM %[5]s WHERE %[6]s`,
		aliasInscription, schema.Inscription.ID, schema.Inscription.MinYear, schema.Inscription.MaxYear,
		baseFrom(), visibleWhere(condition),
	)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_year_spans")
	}
	defer rows.Close()

	spans := make([]YearSpan, 0)
	for rows.Next() {
		var span YearSpan
		if err := rows.Scan(&span.RecordID, &span.MinYear, &span.MaxYear); err != nil {
			return nil, dberr.Wrap(err, "scan_year_span")
		}
		spans = append(spans, span)
	}

	return spans, dberr.Wrap(rows.Err(), "list_year_spans")
}

// Export streams fully resolved records matching predicate.
func (repository *PostgresRepository) Export(context context.Context, predicate Predicate, visit func(*Inscription) error) error {
	condition, args := Compile(predicate)

	rows, err := repository.db.Query(context, detailQuery(condition), args...)
	if err != nil {
		return dberr.Wrap(err, "export_inscriptions")
	}
	defer rows.Close()

	for rows.Next() {
		inscription, err := scanDetail(rows)
		if err != nil {
			return dberr.Wrap(err, "scan_inscription_export")
		}
		if err := visit(inscription); err != nil {
			return err
		}
	}

	return dberr.Wrap(rows.Err(), "export_inscriptions")
}
