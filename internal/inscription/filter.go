// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription

import (
	"net/url"
	"strings"

	"github.com/taibuivan/sophia/pkg/query"
)

// # Query Filter Chain

// filterKind selects how a query parameter value turns into a predicate.
type filterKind int

const (
	// filterEquals compares an integer id for equality.
	filterEquals filterKind = iota
	// filterStartsWith matches a text prefix.
	filterStartsWith
	// filterLowerBound keeps values greater than or equal to the parameter.
	filterLowerBound
	// filterUpperBound keeps values less than or equal to the parameter.
	filterUpperBound
)

// filterParam binds a recognised query parameter to a field.
type filterParam struct {
	name  string
	field *Field
	kind  filterKind
}

// filterParams is the table of recognised search filters, applied in order.
var filterParams = []filterParam{
	{name: "type_of_inscription", field: fieldTypeOfInscription, kind: filterEquals},
	{name: "writing_system", field: fieldWritingSystem, kind: filterEquals},
	{name: "genre", field: fieldGenre, kind: filterEquals},
	{name: "tags", field: fieldTags, kind: filterEquals},
	{name: "language", field: fieldLanguage, kind: filterEquals},
	{name: "panel", field: fieldPanel, kind: filterEquals},
	{name: "medium", field: fieldMedium, kind: filterEquals},
	{name: "material", field: fieldMaterial, kind: filterEquals},
	{name: "alignment", field: fieldAlignment, kind: filterEquals},
	{name: "condition", field: fieldCondition, kind: filterEquals},
	{name: "mentioned_person", field: fieldMentionedPerson, kind: filterEquals},
	{name: "dating_criteria", field: fieldDatingCriteria, kind: filterEquals},
	{name: "panel_title_str", field: FieldPanelTitle, kind: filterStartsWith},
	{name: "inscription_title_str", field: FieldTitle, kind: filterStartsWith},
	{name: "min_year", field: fieldMinYear, kind: filterLowerBound},
	{name: "max_year", field: fieldMaxYear, kind: filterUpperBound},
}

// FilterParamNames returns the recognised filter parameter names.
func FilterParamNames() []string {
	names := make([]string, len(filterParams))
	for i, param := range filterParams {
		names[i] = param.name
	}
	return names
}

/*
ParseFilters turns recognised query parameters into AND-ed predicates.

Absent or empty parameters add nothing. Values that do not parse as integers
within the int32 range of the id and year columns are dropped silently, so "material=abc" behaves
exactly like omitting "material". A repeated parameter adds one predicate per
value.
*/
func ParseFilters(values url.Values) []Predicate {
	var predicates []Predicate

	for _, param := range filterParams {
		raw := nonEmpty(values[param.name])
		if len(raw) == 0 {
			continue
		}

		switch param.kind {
		case filterEquals:
			for _, id := range query.IntSlice(raw) {
				predicates = append(predicates, Equals{Field: param.field, Value: id})
			}

		case filterStartsWith:
			for _, prefix := range raw {
				predicates = append(predicates, StartsWith{Field: param.field, Value: prefix})
			}

		case filterLowerBound, filterUpperBound:
			for _, year := range query.IntSlice(raw) {
				bound := Range{Field: param.field}
				if param.kind == filterLowerBound {
					bound.Min = &year
				} else {
					bound.Max = &year
				}
				predicates = append(predicates, bound)
			}
		}
	}

	return predicates
}

// nonEmpty trims values and drops blank entries.
func nonEmpty(values []string) []string {
	var out []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
