// Package telemetry summarizes and records the genetic state of a population.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds per-species counters for one breeding generation.
type GenerationStats struct {
	Generation    int     `csv:"generation"`
	Tick          int64   `csv:"tick"`
	Species       string  `csv:"species"`
	Population    int     `csv:"population"`
	Births        int     `csv:"births"`
	Attempts      int     `csv:"attempts"`
	Infertile     int     `csv:"infertile"`
	Incompatible  int     `csv:"incompatible"`
	MeanDiversity float64 `csv:"diversity"` // Mean fraction of loci differing from the species consensus
}

// TraitSummary describes the distribution of one numeric trait in one species.
type TraitSummary struct {
	Generation int     `csv:"generation"`
	Species    string  `csv:"species"`
	Trait      string  `csv:"trait"`
	Count      int     `csv:"count"`
	Mean       float64 `csv:"mean"`
	Std        float64 `csv:"std"`
	Min        float64 `csv:"min"`
	Median     float64 `csv:"median"`
	Max        float64 `csv:"max"`
}

// Summarize computes a TraitSummary of values. Empty input yields a zero summary.
func Summarize(generation int, species, trait string, values []float64) TraitSummary {
	s := TraitSummary{
		Generation: generation,
		Species:    species,
		Trait:      trait,
		Count:      len(values),
	}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}

// Diversity returns the mean fraction of loci at which each gene string differs
// from the per-locus majority allele. Strings shorter than the first are ignored.
func Diversity(genes []string) float64 {
	if len(genes) == 0 || len(genes[0]) == 0 {
		return 0
	}
	n := len(genes[0])

	consensus := make([]byte, n)
	for i := 0; i < n; i++ {
		counts := make(map[byte]int)
		best, bestCount := byte(0), -1
		for _, g := range genes {
			if len(g) < n {
				continue
			}
			counts[g[i]]++
			if c := counts[g[i]]; c > bestCount || (c == bestCount && g[i] < best) {
				best, bestCount = g[i], c
			}
		}
		consensus[i] = best
	}

	diffs := make([]float64, 0, len(genes))
	for _, g := range genes {
		if len(g) < n {
			continue
		}
		d := 0
		for i := 0; i < n; i++ {
			if g[i] != consensus[i] {
				d++
			}
		}
		diffs = append(diffs, float64(d)/float64(n))
	}
	if len(diffs) == 0 {
		return 0
	}
	return stat.Mean(diffs, nil)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"tick", s.Tick,
		"species", s.Species,
		"population", s.Population,
		"births", s.Births,
		"attempts", s.Attempts,
		"infertile", s.Infertile,
		"incompatible", s.Incompatible,
		"diversity", s.MeanDiversity,
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s TraitSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("species", s.Species),
		slog.String("trait", s.Trait),
		slog.Int("count", s.Count),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("median", s.Median),
		slog.Float64("max", s.Max),
	)
}
