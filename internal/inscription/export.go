// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/sophia/internal/reference"
	"github.com/taibuivan/sophia/pkg/pointer"
	"github.com/taibuivan/sophia/pkg/richtext"
	"github.com/taibuivan/sophia/pkg/slice"
)

// # CSV Export

// ExportColumns is the header row of the inscription export.
var ExportColumns = []string{
	"id", "title", "position_on_surface", "panel_title", "panel_room",
	"type_of_inscription", "genres", "tags", "elevation", "height", "width",
	"language", "writing_system", "min_year", "max_year", "dating_criteria",
	"transcription", "interpretative_edition", "romanisation", "mentioned_persons",
	"inscriber", "translation_eng", "translation_ukr", "comments_eng", "comments_ukr",
	"conditions", "alignments", "extra_alphabetical_signs", "bibliography_items",
	"authors", "created_at", "updated_at",
}

// listSeparator joins multi-valued cells.
const listSeparator = "; "

// ExportOptions tunes the CSV rendering.
type ExportOptions struct {
	// PlainText renders rich-text fields through html2text. The default keeps
	// the stored markup untouched.
	PlainText bool
}

// csvExporter writes inscriptions as CSV rows.
type csvExporter struct {
	writer  *csv.Writer
	options ExportOptions
	rows    int
}

func newCSVExporter(writer io.Writer, options ExportOptions) *csvExporter {
	return &csvExporter{writer: csv.NewWriter(writer), options: options}
}

func (exporter *csvExporter) writeHeader() error {
	return exporter.writer.Write(ExportColumns)
}

func (exporter *csvExporter) write(inscription *Inscription) error {
	if err := exporter.writer.Write(ExportRow(inscription, exporter.options)); err != nil {
		return fmt.Errorf("export: write row %d: %w", inscription.ID, err)
	}
	exporter.rows++
	return nil
}

func (exporter *csvExporter) flush() error {
	exporter.writer.Flush()
	return exporter.writer.Error()
}

// ExportRow renders an inscription as the cells of [ExportColumns].
func ExportRow(inscription *Inscription, options ExportOptions) []string {
	text := raw
	if options.PlainText {
		text = plain
	}

	var panelTitle, panelRoom string
	if inscription.Panel != nil {
		panelTitle, panelRoom = pointer.Val(inscription.Panel.Title), pointer.Val(inscription.Panel.Room)
	}

	var inscriber string
	if inscription.Inscriber != nil {
		inscriber = pointer.Val(inscription.Inscriber.Name)
	}

	persons := slice.Map(inscription.MentionedPersons, func(person reference.HistoricalPerson) string {
		return pointer.Val(person.Name)
	})
	items := slice.Map(inscription.Bibliography, func(item reference.BibliographyItem) string {
		return pointer.Val(item.Title)
	})
	authors := slice.Map(inscription.Authors, reference.Author.FullName)

	return []string{
		strconv.Itoa(inscription.ID),
		pointer.Val(inscription.Title),
		pointer.Val(inscription.PositionOnSurface),
		panelTitle,
		panelRoom,
		termText(inscription.TypeOfInscription),
		joinTerms(inscription.Genres),
		joinTerms(inscription.Tags),
		formatFloat(inscription.Elevation),
		formatFloat(inscription.Height),
		formatFloat(inscription.Width),
		termText(inscription.Language),
		termText(inscription.WritingSystem),
		formatInt(inscription.MinYear),
		formatInt(inscription.MaxYear),
		joinTerms(inscription.DatingCriteria),
		text(inscription.Transcription),
		text(inscription.InterpretativeEdition),
		text(inscription.Romanisation),
		joinNonEmpty(persons),
		inscriber,
		text(inscription.TranslationEng),
		text(inscription.TranslationUkr),
		text(inscription.CommentsEng),
		text(inscription.CommentsUkr),
		joinTerms(inscription.Conditions),
		joinTerms(inscription.Alignments),
		joinTerms(inscription.ExtraAlphabeticalSigns),
		joinNonEmpty(items),
		joinNonEmpty(authors),
		formatTime(inscription.CreatedAt),
		formatTime(inscription.UpdatedAt),
	}
}

func termText(term *reference.Term) string {
	if term == nil {
		return ""
	}
	return pointer.Val(term.Text)
}

func joinTerms(terms []reference.Term) string {
	return joinNonEmpty(slice.Map(terms, func(term reference.Term) string {
		return pointer.Val(term.Text)
	}))
}

// joinNonEmpty joins the non-blank values of a multi-valued cell.
func joinNonEmpty(values []string) string {
	return strings.Join(slice.Filter(values, func(value string) bool {
		return strings.TrimSpace(value) != ""
	}), listSeparator)
}

func raw(value *string) string {
	return pointer.Val(value)
}

func plain(value *string) string {
	return richtext.PlainText(pointer.Val(value))
}

func formatFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
