package recommend

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func floatPtr(v float64) *float64 { return &v }

func TestEstimateMastery(t *testing.T) {
	cases := []struct {
		name       string
		records    []CompletedRecord
		vocabulary []string
		want       map[string]float64
	}{
		{
			name: "averages_scores_per_tag",
			records: []CompletedRecord{
				{Tags: []string{"python"}, Score: floatPtr(80)},
				{Tags: []string{"python"}, Score: floatPtr(100)},
			},
			vocabulary: []string{"python"},
			want:       map[string]float64{"python": 0.9},
		},
		{
			name: "missing_score_counts_as_full_marks",
			records: []CompletedRecord{
				{Tags: []string{"sql"}, Score: nil},
				{Tags: []string{"sql"}, Score: floatPtr(50)},
			},
			vocabulary: []string{"sql"},
			want:       map[string]float64{"sql": 0.75},
		},
		{
			name: "unseen_tag_defaults_to_zero",
			records: []CompletedRecord{
				{Tags: []string{"python"}, Score: floatPtr(90)},
			},
			vocabulary: []string{"python", "web"},
			want:       map[string]float64{"python": 0.9, "web": 0},
		},
		{
			name: "deleted_item_record_is_skipped",
			records: []CompletedRecord{
				{Tags: nil, Score: floatPtr(100), ItemMissing: true},
				{Tags: []string{"go"}, Score: floatPtr(60)},
			},
			vocabulary: []string{"go"},
			want:       map[string]float64{"go": 0.6},
		},
		{
			name:       "no_records_yields_all_zero",
			records:    nil,
			vocabulary: []string{"a", "b"},
			want:       map[string]float64{"a": 0, "b": 0},
		},
		{
			name: "record_contributes_to_every_tag_on_item",
			records: []CompletedRecord{
				{Tags: []string{"python", "web"}, Score: floatPtr(70)},
			},
			vocabulary: []string{"python", "web"},
			want:       map[string]float64{"python": 0.7, "web": 0.7},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimateMastery(tc.records, tc.vocabulary)
			if len(got) != len(tc.vocabulary) {
				t.Fatalf("mastery map has %d keys, want %d (must be total over vocabulary)", len(got), len(tc.vocabulary))
			}
			for tag, want := range tc.want {
				if !almostEqual(got[tag], want) {
					t.Fatalf("mastery[%q]=%v, want %v", tag, got[tag], want)
				}
			}
		})
	}
}

func TestEstimateMasteryCapsAtOne(t *testing.T) {
	// Scores are bounded by 100 upstream, but the estimator still caps.
	records := []CompletedRecord{
		{Tags: []string{"math"}, Score: floatPtr(120)},
	}
	got := EstimateMastery(records, []string{"math"})
	if !almostEqual(got["math"], 1.0) {
		t.Fatalf("mastery[math]=%v, want capped 1.0", got["math"])
	}
}
