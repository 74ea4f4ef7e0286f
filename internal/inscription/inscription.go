// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package inscription implements discovery over the inscription catalogue.

An inscription is a graffito or painted text recorded on a panel of the
building. This package owns the read side of the catalogue:

  - Search: free-text matching across plain and rich text fields, AND-ed with
    optional filters (type, language, writing system, year range, ...).
  - Autocomplete: per-field suggestion groups, de-duplicated and ranked.
  - Summary: distinct-record distributions per classification and year.
  - Export: the CSV dump of transcribed inscriptions.

Queries are expressed as store-agnostic [Predicate] values and compiled to SQL
by the PostgreSQL repository.
*/
package inscription

import (
	"time"

	"github.com/taibuivan/sophia/internal/reference"
)

// # Core Entities

// PanelRef is the compact view of the panel an inscription sits on.
type PanelRef struct {
	ID    int     `json:"id"`
	Title *string `json:"title"`
	Room  *string `json:"room"`
}

// Summary is the list representation of an inscription returned by search.
type Summary struct {
	ID                int             `json:"id"`
	Title             *string         `json:"title"`
	Panel             *PanelRef       `json:"panel,omitempty"`
	TypeOfInscription *reference.Term `json:"type_of_inscription,omitempty"`
	Language          *reference.Term `json:"language,omitempty"`
	WritingSystem     *reference.Term `json:"writing_system,omitempty"`
	MinYear           *int            `json:"min_year"`
	MaxYear           *int            `json:"max_year"`
}

// LocalizedText is a translation or description of an inscription in one language.
// Text holds stored rich text.
type LocalizedText struct {
	ID       int             `json:"id"`
	Language *reference.Term `json:"language"`
	Text     *string         `json:"text"`
}

// Inscription is the fully resolved record returned by the detail endpoint.
type Inscription struct {
	Summary

	PositionOnSurface *string  `json:"position_on_surface"`
	Elevation         *float64 `json:"elevation"`
	Height            *float64 `json:"height"`
	Width             *float64 `json:"width"`

	// Rich text (editor HTML)
	Transcription         *string `json:"transcription"`
	InterpretativeEdition *string `json:"interpretative_edition"`
	Romanisation          *string `json:"romanisation"`
	TranslationEng        *string `json:"translation_eng"`
	TranslationUkr        *string `json:"translation_ukr"`
	CommentsEng           *string `json:"comments_eng"`
	CommentsUkr           *string `json:"comments_ukr"`

	Inscriber              *reference.HistoricalPerson  `json:"inscriber,omitempty"`
	Genres                 []reference.Term             `json:"genre"`
	Tags                   []reference.Term             `json:"tags"`
	MentionedPersons       []reference.HistoricalPerson `json:"mentioned_person"`
	Conditions             []reference.Term             `json:"condition"`
	Alignments             []reference.Term             `json:"alignment"`
	DatingCriteria         []reference.Term             `json:"dating_criteria"`
	ExtraAlphabeticalSigns []reference.Term             `json:"extra_alphabetical_sign"`
	Bibliography           []reference.BibliographyItem `json:"bibliography"`
	Authors                []reference.Author           `json:"author"`
	Translations           []LocalizedText              `json:"translations"`
	Descriptions           []LocalizedText              `json:"descriptions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Autocomplete

// Suggestion is one autocomplete entry: a distinct value, the field group it
// came from, and the ids of the inscriptions holding it.
type Suggestion struct {
	Value  string `json:"value"`
	Source string `json:"source"`
	IDs    []int  `json:"ids"`
}

// Candidate is a raw field value read from the store for autocomplete.
type Candidate struct {
	ID    int
	Value string
}

// # Field Identifiers

const (
	FieldQuery      = "q"
	FieldLimit      = "limit"
	FieldMaxResults = "max"
)
