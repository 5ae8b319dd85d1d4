package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/genome/systems"
)

// logPerfStats logs average phase durations.
func (g *Game) logPerfStats() {
	total := g.perf.Total()
	attrs := []any{
		"generation", g.generation,
		"total", total.Round(time.Microsecond).String(),
	}
	for _, name := range g.perf.SortedNames() {
		avg := g.perf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		attrs = append(attrs, slog.Group(g.systemInfo.GetName(name),
			"avg", avg.Round(time.Microsecond).String(),
			"max", g.perf.Max(name).Round(time.Microsecond).String(),
			"pct", pct,
		))
	}
	slog.Info("perf", attrs...)
}

// logBirths logs the breeding outcome of a generation.
func logBirths(generation int, species string, st systems.BreedingStats) {
	slog.Debug("breeding",
		"generation", generation,
		"species", species,
		"attempts", st.Attempts,
		"births", st.Births,
		"infertile", st.Infertile,
		"incompatible", st.Incompatible,
	)
}
