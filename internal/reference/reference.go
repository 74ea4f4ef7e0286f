// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the controlled vocabularies and scholarly records
shared by inscriptions, panels and images.

# Core Responsibility

  - Vocabularies: Bilingual (English/Ukrainian) terms such as languages,
    writing systems, genres and conditions, addressed by [Kind].
  - People: [HistoricalPerson] records mentioned in or inscribing texts.
  - Scholarship: [Author] editors of the catalogue and [BibliographyItem] references.

Every other domain package embeds these types when it resolves foreign keys.
*/
package reference

import (
	"strings"

	"github.com/taibuivan/sophia/internal/platform/database/schema"
)

// # Vocabulary Domain

// Term is one entry of a controlled vocabulary.
type Term struct {
	ID      int     `json:"id"`
	Text    *string `json:"text"`
	TextUkr *string `json:"text_ukr"`
}

// Kind names a vocabulary exposed over the API and the table backing it.
type Kind struct {
	Slug  string
	Table schema.VocabularyTable
}

// Kinds lists every public vocabulary in display order.
var Kinds = []Kind{
	{Slug: "languages", Table: schema.Language},
	{Slug: "writing-systems", Table: schema.WritingSystem},
	{Slug: "genres", Table: schema.Genre},
	{Slug: "tags", Table: schema.Tag},
	{Slug: "inscription-types", Table: schema.InscriptionType},
	{Slug: "image-types", Table: schema.ImageType},
	{Slug: "media", Table: schema.Medium},
	{Slug: "materials", Table: schema.Material},
	{Slug: "conditions", Table: schema.Condition},
	{Slug: "alignments", Table: schema.Alignment},
	{Slug: "dating-criteria", Table: schema.DatingCriterion},
	{Slug: "extra-alphabetical-signs", Table: schema.ExtraAlphabeticalSign},
}

// LookupKind resolves a vocabulary slug. Matching ignores case.
func LookupKind(slug string) (Kind, bool) {
	for _, kind := range Kinds {
		if strings.EqualFold(kind.Slug, slug) {
			return kind, true
		}
	}
	return Kind{}, false
}

// # People Domain

// HistoricalPerson is a person attested by the inscriptions.
type HistoricalPerson struct {
	ID          int     `json:"id"`
	Name        *string `json:"name"`
	NameUkr     *string `json:"name_ukr"`
	Information *string `json:"information,omitempty"`
}

// Author is an editor credited on catalogue entries.
type Author struct {
	ID           int     `json:"id"`
	Firstname    *string `json:"firstname"`
	Lastname     *string `json:"lastname"`
	FirstnameUkr *string `json:"firstname_ukr"`
	LastnameUkr  *string `json:"lastname_ukr"`
}

// FullName joins the English first and last name, skipping blanks.
func (author Author) FullName() string {
	var parts []string
	for _, part := range []*string{author.Firstname, author.Lastname} {
		if part != nil && strings.TrimSpace(*part) != "" {
			parts = append(parts, strings.TrimSpace(*part))
		}
	}
	return strings.Join(parts, " ")
}

// # Bibliography Domain

// BibliographyItem is a published work citing or editing inscriptions.
type BibliographyItem struct {
	ID        int     `json:"id"`
	Title     *string `json:"title"`
	Reference *string `json:"reference"`
}

// # Search Params

// PersonFilter holds the parameters for a paginated person search.
type PersonFilter struct {
	Query string // Substring match against both name columns
}

// # Field Identifiers

const (
	FieldKind  = "kind"
	FieldQuery = "q"
)
