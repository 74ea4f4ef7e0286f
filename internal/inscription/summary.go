// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
	"strings"

	"github.com/taibuivan/sophia/pkg/pointer"
)

// # Summary Aggregator

// MaxDatingSpan is the widest min/max year range that still yields an
// average year. Wider ranges are too uncertain to place in the distribution.
const MaxDatingSpan = 200

// Dimension names a classification the summary groups by.
type Dimension string

const (
	DimensionTypeOfInscription    Dimension = "type_of_inscription"
	DimensionWritingSystem        Dimension = "writing_system"
	DimensionLanguage             Dimension = "language"
	DimensionTextualGenre         Dimension = "textual_genre"
	DimensionPictorialDescription Dimension = "pictorial_description"
	DimensionMinYear              Dimension = "min_year"
	DimensionMaxYear              Dimension = "max_year"
	DimensionAvgYear              Dimension = "avg_year"
)

// Membership ties a record to one labelled value of a dimension.
// A record appears once per distinct value it holds.
type Membership struct {
	Dimension Dimension
	RecordID  int
	Label     *string
	LabelUkr  *string
}

// YearSpan is the dating estimate of a record.
type YearSpan struct {
	RecordID int
	MinYear  *int
	MaxYear  *int
}

// Group is one labelled bucket of a classification dimension.
type Group struct {
	Dimension Dimension
	Label     string
	LabelUkr  *string
	Count     int
}

// MarshalJSON renders the group keyed by its dimension:
// {"language": "Greek", "language_ukr": "Грецька", "count": 3}.
func (group Group) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')

	if err := writeMember(&buffer, string(group.Dimension), group.Label); err != nil {
		return nil, err
	}
	buffer.WriteByte(',')
	if err := writeMember(&buffer, string(group.Dimension)+"_ukr", group.LabelUkr); err != nil {
		return nil, err
	}
	buffer.WriteByte(',')
	if err := writeMember(&buffer, "count", group.Count); err != nil {
		return nil, err
	}

	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// YearGroup is one bucket of a year dimension.
type YearGroup struct {
	Dimension Dimension
	Year      int
	Count     int
}

// MarshalJSON renders the group keyed by its dimension: {"avg_year": 1050, "count": 2}.
func (group YearGroup) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	if err := writeMember(&buffer, string(group.Dimension), group.Year); err != nil {
		return nil, err
	}
	buffer.WriteByte(',')
	if err := writeMember(&buffer, "count", group.Count); err != nil {
		return nil, err
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// writeMember appends a "key":value pair.
func writeMember(buffer *bytes.Buffer, key string, value any) error {
	encodedKey, err := json.Marshal(key)
	if err != nil {
		return err
	}
	encodedValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buffer.Write(encodedKey)
	buffer.WriteByte(':')
	buffer.Write(encodedValue)
	return nil
}

// Report is the summary of a filtered inscription set.
type Report struct {
	TypeOfInscription    []Group     `json:"type_of_inscription"`
	WritingSystem        []Group     `json:"writing_system"`
	Language             []Group     `json:"language"`
	TextualGenre         []Group     `json:"textual_genre"`
	PictorialDescription []Group     `json:"pictorial_description"`
	MinYear              []YearGroup `json:"min_year"`
	MaxYear              []YearGroup `json:"max_year"`
	AvgYear              []YearGroup `json:"avg_year"`
}

/*
Summarize computes the distribution of a record set.

Classification groups count distinct records per (label, ukrainian label) pair,
largest first, and skip blank labels. Year groups count distinct records per
year. The average year dimension is described in [AverageYears].

The inputs are never modified; calling Summarize twice on the same rows yields
equal reports.
*/
func Summarize(memberships []Membership, spans []YearSpan) Report {
	byDimension := make(map[Dimension][]Membership)
	for _, membership := range memberships {
		byDimension[membership.Dimension] = append(byDimension[membership.Dimension], membership)
	}

	var minYears, maxYears []yearPoint
	for _, span := range spans {
		if span.MinYear != nil {
			minYears = append(minYears, yearPoint{record: span.RecordID, year: *span.MinYear})
		}
		if span.MaxYear != nil {
			maxYears = append(maxYears, yearPoint{record: span.RecordID, year: *span.MaxYear})
		}
	}

	return Report{
		TypeOfInscription:    groupLabels(DimensionTypeOfInscription, byDimension[DimensionTypeOfInscription]),
		WritingSystem:        groupLabels(DimensionWritingSystem, byDimension[DimensionWritingSystem]),
		Language:             groupLabels(DimensionLanguage, byDimension[DimensionLanguage]),
		TextualGenre:         groupLabels(DimensionTextualGenre, byDimension[DimensionTextualGenre]),
		PictorialDescription: groupLabels(DimensionPictorialDescription, byDimension[DimensionPictorialDescription]),
		MinYear:              sortByCount(groupYears(DimensionMinYear, minYears)),
		MaxYear:              sortByCount(groupYears(DimensionMaxYear, maxYears)),
		AvgYear:              AverageYears(spans),
	}
}

/*
AverageYears buckets records by the midpoint of their dating range.

Only records with both years set and max_year <= min_year + [MaxDatingSpan]
take part. The bucket of a record is floor((min_year + max_year) / 2); buckets
count distinct records and are sorted by year ascending.
*/
func AverageYears(spans []YearSpan) []YearGroup {
	points := make([]yearPoint, 0, len(spans))
	for _, span := range spans {
		if span.MinYear == nil || span.MaxYear == nil {
			continue
		}
		low, high := *span.MinYear, *span.MaxYear
		if high > low+MaxDatingSpan {
			continue
		}
		points = append(points, yearPoint{record: span.RecordID, year: floorHalf(low + high)})
	}

	groups := groupYears(DimensionAvgYear, points)
	slices.SortFunc(groups, func(a, b YearGroup) int { return cmp.Compare(a.Year, b.Year) })
	return groups
}

// floorHalf divides by two rounding towards negative infinity, so BC dates bucket correctly.
func floorHalf(sum int) int {
	if sum < 0 && sum%2 != 0 {
		return sum/2 - 1
	}
	return sum / 2
}

type yearPoint struct {
	record int
	year   int
}

type labelKey struct {
	label    string
	labelUkr string
	hasUkr   bool
}

// groupLabels counts distinct records per label pair, skipping blank labels.
func groupLabels(dimension Dimension, memberships []Membership) []Group {
	records := make(map[labelKey]map[int]struct{})
	labels := make(map[labelKey]Group)

	for _, membership := range memberships {
		if membership.Label == nil || strings.TrimSpace(*membership.Label) == "" {
			continue
		}

		key := labelKey{label: *membership.Label}
		if membership.LabelUkr != nil {
			key.labelUkr, key.hasUkr = *membership.LabelUkr, true
		}

		if _, ok := records[key]; !ok {
			records[key] = make(map[int]struct{})
			labels[key] = Group{Dimension: dimension, Label: key.label, LabelUkr: membership.LabelUkr}
		}
		records[key][membership.RecordID] = struct{}{}
	}

	groups := make([]Group, 0, len(records))
	for key, ids := range records {
		group := labels[key]
		group.Count = len(ids)
		groups = append(groups, group)
	}

	slices.SortFunc(groups, func(a, b Group) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return strings.Compare(pointer.Val(a.LabelUkr), pointer.Val(b.LabelUkr))
	})

	return groups
}

// groupYears counts distinct records per year, unsorted.
func groupYears(dimension Dimension, points []yearPoint) []YearGroup {
	records := make(map[int]map[int]struct{})
	for _, point := range points {
		if _, ok := records[point.year]; !ok {
			records[point.year] = make(map[int]struct{})
		}
		records[point.year][point.record] = struct{}{}
	}

	groups := make([]YearGroup, 0, len(records))
	for year, ids := range records {
		groups = append(groups, YearGroup{Dimension: dimension, Year: year, Count: len(ids)})
	}
	return groups
}

// sortByCount orders year groups largest first, then by year.
func sortByCount(groups []YearGroup) []YearGroup {
	slices.SortFunc(groups, func(a, b YearGroup) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Year, b.Year)
	})
	return groups
}
