// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package inscription_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sophia/internal/inscription"
	"github.com/taibuivan/sophia/pkg/pointer"
)

func span(id int, low, high *int) inscription.YearSpan {
	return inscription.YearSpan{RecordID: id, MinYear: low, MaxYear: high}
}

/*
TestAverageYears checks the midpoint bucket rule.
*/
func TestAverageYears(t *testing.T) {
	tests := []struct {
		name  string
		spans []inscription.YearSpan
		want  []inscription.YearGroup
	}{
		{
			name:  "single_record",
			spans: []inscription.YearSpan{span(1, pointer.To(1000), pointer.To(1100))},
			want:  []inscription.YearGroup{{Dimension: inscription.DimensionAvgYear, Year: 1050, Count: 1}},
		},
		{
			name:  "span_at_limit_included",
			spans: []inscription.YearSpan{span(1, pointer.To(1000), pointer.To(1200))},
			want:  []inscription.YearGroup{{Dimension: inscription.DimensionAvgYear, Year: 1100, Count: 1}},
		},
		{
			name:  "span_too_wide_excluded",
			spans: []inscription.YearSpan{span(1, pointer.To(1000), pointer.To(1201))},
			want:  []inscription.YearGroup{},
		},
		{
			name:  "missing_year_excluded",
			spans: []inscription.YearSpan{span(1, pointer.To(1000), nil), span(2, nil, pointer.To(1100))},
			want:  []inscription.YearGroup{},
		},
		{
			name:  "odd_sum_floors",
			spans: []inscription.YearSpan{span(1, pointer.To(1000), pointer.To(1001))},
			want:  []inscription.YearGroup{{Dimension: inscription.DimensionAvgYear, Year: 1000, Count: 1}},
		},
		{
			name:  "negative_odd_sum_floors_down",
			spans: []inscription.YearSpan{span(1, pointer.To(-3), pointer.To(0))},
			want:  []inscription.YearGroup{{Dimension: inscription.DimensionAvgYear, Year: -2, Count: 1}},
		},
		{
			name: "sorted_by_year_with_distinct_counts",
			spans: []inscription.YearSpan{
				span(3, pointer.To(1100), pointer.To(1100)),
				span(1, pointer.To(1000), pointer.To(1100)),
				span(2, pointer.To(1040), pointer.To(1060)),
				span(2, pointer.To(1040), pointer.To(1060)),
			},
			want: []inscription.YearGroup{
				{Dimension: inscription.DimensionAvgYear, Year: 1050, Count: 2},
				{Dimension: inscription.DimensionAvgYear, Year: 1100, Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inscription.AverageYears(tt.spans))
		})
	}
}

/*
TestSummarize_Groups verifies distinct counting, ordering and blank label exclusion.
*/
func TestSummarize_Groups(t *testing.T) {
	greek, greekUkr := pointer.To("Greek"), pointer.To("Грецька")
	slavonic := pointer.To("Church Slavonic")

	memberships := []inscription.Membership{
		{Dimension: inscription.DimensionLanguage, RecordID: 1, Label: slavonic},
		{Dimension: inscription.DimensionLanguage, RecordID: 2, Label: greek, LabelUkr: greekUkr},
		{Dimension: inscription.DimensionLanguage, RecordID: 3, Label: greek, LabelUkr: greekUkr},
		{Dimension: inscription.DimensionLanguage, RecordID: 3, Label: greek, LabelUkr: greekUkr},
		{Dimension: inscription.DimensionLanguage, RecordID: 4, Label: pointer.To("  ")},
		{Dimension: inscription.DimensionLanguage, RecordID: 5, Label: nil},
		{Dimension: inscription.DimensionPictorialDescription, RecordID: 1, Label: pointer.To("Cross")},
	}

	report := inscription.Summarize(memberships, nil)

	assert.Equal(t, []inscription.Group{
		{Dimension: inscription.DimensionLanguage, Label: "Greek", LabelUkr: greekUkr, Count: 2},
		{Dimension: inscription.DimensionLanguage, Label: "Church Slavonic", Count: 1},
	}, report.Language)

	require.Len(t, report.PictorialDescription, 1)
	assert.Equal(t, "Cross", report.PictorialDescription[0].Label)
	assert.Empty(t, report.TypeOfInscription)
	assert.Empty(t, report.AvgYear)
}

/*
TestSummarize_Years counts min and max years by distinct record.
*/
func TestSummarize_Years(t *testing.T) {
	spans := []inscription.YearSpan{
		span(1, pointer.To(1000), pointer.To(1100)),
		span(2, pointer.To(1000), pointer.To(1400)),
		span(3, pointer.To(1050), nil),
	}

	report := inscription.Summarize(nil, spans)

	assert.Equal(t, []inscription.YearGroup{
		{Dimension: inscription.DimensionMinYear, Year: 1000, Count: 2},
		{Dimension: inscription.DimensionMinYear, Year: 1050, Count: 1},
	}, report.MinYear)

	assert.Equal(t, []inscription.YearGroup{
		{Dimension: inscription.DimensionMaxYear, Year: 1100, Count: 1},
		{Dimension: inscription.DimensionMaxYear, Year: 1400, Count: 1},
	}, report.MaxYear)

	assert.Equal(t, []inscription.YearGroup{
		{Dimension: inscription.DimensionAvgYear, Year: 1050, Count: 1},
	}, report.AvgYear)
}

/*
TestSummarize_Idempotent runs the aggregation twice over the same rows.
*/
func TestSummarize_Idempotent(t *testing.T) {
	memberships := []inscription.Membership{
		{Dimension: inscription.DimensionWritingSystem, RecordID: 1, Label: pointer.To("Cyrillic")},
		{Dimension: inscription.DimensionWritingSystem, RecordID: 2, Label: pointer.To("Glagolitic")},
		{Dimension: inscription.DimensionTextualGenre, RecordID: 2, Label: pointer.To("Prayer")},
	}
	spans := []inscription.YearSpan{span(1, pointer.To(1050), pointer.To(1100))}

	assert.Equal(t, inscription.Summarize(memberships, spans), inscription.Summarize(memberships, spans))
}

/*
TestReport_JSON checks the keyed shape of each group.
*/
func TestReport_JSON(t *testing.T) {
	report := inscription.Summarize(
		[]inscription.Membership{{Dimension: inscription.DimensionLanguage, RecordID: 1, Label: pointer.To("Greek"), LabelUkr: pointer.To("Грецька")}},
		[]inscription.YearSpan{span(1, pointer.To(1000), pointer.To(1100))},
	)

	encoded, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, map[string]any{"language": "Greek", "language_ukr": "Грецька", "count": float64(1)}, decoded["language"][0])
	assert.Equal(t, map[string]any{"avg_year": float64(1050), "count": float64(1)}, decoded["avg_year"][0])
	assert.Contains(t, decoded, "pictorial_description")
}
