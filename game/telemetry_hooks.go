package game

import (
	"log/slog"

	"github.com/pthm-cable/genome/components"
	"github.com/pthm-cable/genome/telemetry"
)

// speciesSample holds a generation's observations of one species.
type speciesSample struct {
	genes   []string
	numeric map[string][]float64 // trait -> values
	records []telemetry.OrganismRecord
}

// flushTelemetry summarizes the population after a generation and writes output.
func (g *Game) flushTelemetry(report Report) {
	samples := g.samplePopulation(report)

	var genStats []telemetry.GenerationStats
	var summaries []telemetry.TraitSummary
	var records []telemetry.OrganismRecord

	for _, species := range g.registry.IDs() {
		sample := samples[species]
		br := report.Breeding[species]
		logBirths(report.Generation, species, br)

		st := telemetry.GenerationStats{
			Generation:   report.Generation,
			Tick:         report.Tick,
			Species:      species,
			Births:       br.Births,
			Attempts:     br.Attempts,
			Infertile:    br.Infertile,
			Incompatible: br.Incompatible,
		}
		if sample != nil {
			st.Population = len(sample.genes)
			st.MeanDiversity = telemetry.Diversity(sample.genes)
			for _, trait := range sortedKeys(sample.numeric) {
				summaries = append(summaries, telemetry.Summarize(report.Generation, species, trait, sample.numeric[trait]))
			}
			records = append(records, sample.records...)
		}
		genStats = append(genStats, st)

		if g.logStats {
			st.LogStats()
		}
	}

	if g.logStats {
		for _, s := range summaries {
			slog.Info("trait", "summary", s)
		}
	}

	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteGeneration(genStats); err != nil {
		slog.Error("failed to write generation stats", "error", err)
	}
	if err := g.outputManager.WriteTraits(summaries); err != nil {
		slog.Error("failed to write trait summaries", "error", err)
	}
	if err := g.outputManager.WriteOrganisms(records); err != nil {
		slog.Error("failed to write organisms", "error", err)
	}
}

// samplePopulation collects genes, numeric traits and records per species.
func (g *Game) samplePopulation(report Report) map[string]*speciesSample {
	samples := make(map[string]*speciesSample)

	query := g.organismFilter.Query()
	for query.Next() {
		gen, lin, app, vit := query.Get()
		entity := query.Entity()

		s := samples[gen.Species]
		if s == nil {
			s = &speciesSample{numeric: make(map[string][]float64)}
			samples[gen.Species] = s
		}
		s.genes = append(s.genes, string(gen.Genes))

		for _, comp := range []any{app, vit} {
			for _, f := range components.ExtractTraits(comp) {
				if v, ok := numericValue(f.Value); ok {
					s.numeric[f.Trait] = append(s.numeric[f.Trait], v)
				}
			}
		}

		if g.outputManager != nil {
			s.records = append(s.records, telemetry.OrganismRecord{
				Generation: report.Generation,
				Tick:       report.Tick,
				Entity:     entity.ID(),
				Species:    gen.Species,
				Lineage:    lin.Generation,
				ParentA:    lin.ParentA,
				ParentB:    lin.ParentB,
				Genes:      string(gen.Genes),
				Size:       app.Size,
				Color:      app.Color,
				Pattern:    app.Pattern,
				Speed:      vit.Speed,
				Fertility:  vit.Fertility,
				Offspring:  vit.Offspring,
			})
		}
	}
	return samples
}

// Population returns the number of organisms per species.
func (g *Game) Population() map[string]int {
	counts := make(map[string]int)
	query := g.organismFilter.Query()
	for query.Next() {
		gen, _, _, _ := query.Get()
		counts[gen.Species]++
	}
	return counts
}
