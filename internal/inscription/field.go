// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import (
	"fmt"

	"github.com/taibuivan/sophia/internal/platform/database/schema"
)

// # Field Descriptors

// Table aliases used by every inscription query.
const (
	aliasInscription = "i"
	aliasPanel       = "p"
	aliasRelated     = "r"
)

// Relation describes a table that reaches an inscription through a
// one-to-many or many-to-many link.
type Relation struct {
	// From is the FROM clause of the related rows (may contain a JOIN).
	From string

	// Link is the column in From that holds the inscription id.
	Link string
}

// Field is an explicit descriptor of a searchable or filterable column.
//
// Fields live on the inscription row, on its parent panel, or behind a
// [Relation]. Predicates reference fields by pointer; the SQL compiler is the
// only place that turns a descriptor into a column expression.
type Field struct {
	// Key is the stable identifier used in logs and metrics.
	Key string

	// Source is the human label reported with autocomplete suggestions.
	Source string

	// Column is the column name inside the owning table.
	Column string

	// Rich marks editor-authored HTML columns.
	Rich bool

	// OnPanel marks columns that belong to the parent panel.
	OnPanel bool

	// Related is set for columns reached through a link table.
	Related *Relation
}

// Expr returns the SQL expression of the raw column value.
func (field *Field) Expr() string {
	switch {
	case field.Related != nil:
		return aliasRelated + "." + field.Column
	case field.OnPanel:
		return aliasPanel + "." + field.Column
	default:
		return aliasInscription + "." + field.Column
	}
}

// CleanExpr returns the SQL expression of the column with tags stripped.
func (field *Field) CleanExpr() string {
	return fmt.Sprintf(`regexp_replace(%s, '<[^>]+>', '', 'g')`, field.Expr())
}

// junction builds the relation of a many-to-many link whose target id is filtered directly.
func junction(table schema.JunctionTable) *Relation {
	return &Relation{
		From: table.Table + " " + aliasRelated,
		Link: aliasRelated + "." + table.OwnerID,
	}
}

// # Text Fields

var (
	FieldTitle = &Field{Key: "title", Source: "Title", Column: schema.Inscription.Title}

	FieldPanelTitle = &Field{Key: "panel_title", Source: "Panel Title", Column: schema.Panel.Title, OnPanel: true}

	FieldTranscription = &Field{Key: "transcription", Source: "Transcription", Column: schema.Inscription.Transcription, Rich: true}

	FieldInterpretativeEdition = &Field{Key: "interpretative_edition", Source: "Interpretative Edition", Column: schema.Inscription.InterpretativeEdition, Rich: true}

	FieldRomanisation = &Field{Key: "romanisation", Source: "Romanisation", Column: schema.Inscription.Romanisation, Rich: true}

	FieldTranslationEng = &Field{Key: "translation_eng", Source: "Translation (English)", Column: schema.Inscription.TranslationEng, Rich: true}

	FieldTranslationUkr = &Field{Key: "translation_ukr", Source: "Translation (Ukrainian)", Column: schema.Inscription.TranslationUkr, Rich: true}

	FieldCommentsEng = &Field{Key: "comments_eng", Source: "Comments (English)", Column: schema.Inscription.CommentsEng, Rich: true}

	FieldCommentsUkr = &Field{Key: "comments_ukr", Source: "Comments (Ukrainian)", Column: schema.Inscription.CommentsUkr, Rich: true}

	FieldMentionedPersonName = &Field{
		Key:    "mentioned_person",
		Source: "Mentioned Person",
		Column: schema.HistoricalPerson.Name,
		Related: &Relation{
			From: fmt.Sprintf("%s j JOIN %s %s ON %s.%s = j.%s",
				schema.InscriptionMentionedPerson.Table,
				schema.HistoricalPerson.Table, aliasRelated,
				aliasRelated, schema.HistoricalPerson.ID,
				schema.InscriptionMentionedPerson.TargetID,
			),
			Link: "j." + schema.InscriptionMentionedPerson.OwnerID,
		},
	}

	FieldImageTitle = &Field{
		Key:    "image_title",
		Source: "Image Title",
		Column: schema.Image.Title,
		Related: &Relation{
			From: schema.Image.Table + " " + aliasRelated,
			Link: aliasRelated + "." + schema.Image.InscriptionID,
		},
	}
)

// PlainSearchFields are matched by case-insensitive substring.
var PlainSearchFields = []*Field{FieldTitle, FieldPanelTitle, FieldMentionedPersonName, FieldImageTitle}

// RichSearchFields are matched against both their stripped and raw forms.
var RichSearchFields = []*Field{
	FieldTranscription, FieldInterpretativeEdition, FieldRomanisation,
	FieldTranslationEng, FieldTranslationUkr, FieldCommentsEng, FieldCommentsUkr,
}

// AutocompleteFields are the suggestion groups, in the order they are queried.
var AutocompleteFields = []*Field{
	FieldTitle, FieldPanelTitle, FieldTranscription, FieldInterpretativeEdition,
	FieldRomanisation, FieldTranslationEng, FieldTranslationUkr,
	FieldMentionedPersonName, FieldImageTitle,
}

// # Filter Fields

var (
	fieldID                = &Field{Key: "id", Column: schema.Inscription.ID}
	fieldTypeOfInscription = &Field{Key: "type_of_inscription", Column: schema.Inscription.TypeOfInscriptionID}
	fieldWritingSystem     = &Field{Key: "writing_system", Column: schema.Inscription.WritingSystemID}
	fieldLanguage          = &Field{Key: "language", Column: schema.Inscription.LanguageID}
	fieldPanel             = &Field{Key: "panel", Column: schema.Inscription.PanelID}
	fieldMinYear           = &Field{Key: "min_year", Column: schema.Inscription.MinYear}
	fieldMaxYear           = &Field{Key: "max_year", Column: schema.Inscription.MaxYear}
	fieldTranscriptionRaw  = &Field{Key: "transcription", Column: schema.Inscription.Transcription}
	fieldMedium            = &Field{Key: "medium", Column: schema.Panel.MediumID, OnPanel: true}
	fieldMaterial          = &Field{Key: "material", Column: schema.Panel.MaterialID, OnPanel: true}

	fieldGenre           = &Field{Key: "genre", Column: schema.InscriptionGenre.TargetID, Related: junction(schema.InscriptionGenre)}
	fieldTags            = &Field{Key: "tags", Column: schema.InscriptionTag.TargetID, Related: junction(schema.InscriptionTag)}
	fieldAlignment       = &Field{Key: "alignment", Column: schema.InscriptionAlignment.TargetID, Related: junction(schema.InscriptionAlignment)}
	fieldCondition       = &Field{Key: "condition", Column: schema.InscriptionCondition.TargetID, Related: junction(schema.InscriptionCondition)}
	fieldMentionedPerson = &Field{Key: "mentioned_person", Column: schema.InscriptionMentionedPerson.TargetID, Related: junction(schema.InscriptionMentionedPerson)}
	fieldDatingCriteria  = &Field{Key: "dating_criteria", Column: schema.InscriptionDatingCriterion.TargetID, Related: junction(schema.InscriptionDatingCriterion)}
)
