package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   TraitSummary
	}{
		{"empty", nil, TraitSummary{}},
		{"single", []float64{5}, TraitSummary{Count: 1, Mean: 5, Min: 5, Median: 5, Max: 5}},
		{"odd", []float64{3, 1, 2}, TraitSummary{Count: 3, Mean: 2, Std: 1, Min: 1, Median: 2, Max: 3}},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9, 6}, TraitSummary{Count: 9, Mean: 46.0 / 9, Min: 2, Median: 5, Max: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(1, "moss", "size", tt.values)
			if got.Species != "moss" || got.Trait != "size" || got.Generation != 1 {
				t.Errorf("labels = %q/%q/%d", got.Species, got.Trait, got.Generation)
			}
			if got.Count != tt.want.Count {
				t.Errorf("Count = %d, want %d", got.Count, tt.want.Count)
			}
			checks := []struct {
				field     string
				got, want float64
			}{
				{"Mean", got.Mean, tt.want.Mean},
				{"Min", got.Min, tt.want.Min},
				{"Median", got.Median, tt.want.Median},
				{"Max", got.Max, tt.want.Max},
			}
			for _, c := range checks {
				if math.Abs(c.got-c.want) > 1e-9 {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
			if tt.want.Std != 0 && math.Abs(got.Std-tt.want.Std) > 1e-9 {
				t.Errorf("Std = %v, want %v", got.Std, tt.want.Std)
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(0, "moss", "size", values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestDiversity(t *testing.T) {
	tests := []struct {
		name  string
		genes []string
		want  float64
	}{
		{"empty", nil, 0},
		{"identical", []string{"ABCD", "ABCD", "ABCD"}, 0},
		{"one outlier", []string{"AAAA", "AAAA", "AAAA", "BBBB"}, 0.25},
		{"half locus", []string{"AA", "AB", "AA", "AB"}, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diversity(tt.genes); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Diversity(%v) = %v, want %v", tt.genes, got, tt.want)
			}
		})
	}
}
