package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/genome/systems"
)

// Report summarizes one completed generation.
type Report struct {
	Generation int
	Tick       int64
	Breeding   map[string]systems.BreedingStats
	Dispatched int
}

// Step runs one generation: breeding, then expression of every newborn's traits.
func (g *Game) Step() Report {
	g.tick++

	start := time.Now()
	breeding := g.breeding.Update(g.tick, g.createOrganism)
	g.perf.Record(systems.PhaseBreeding, time.Since(start))

	start = time.Now()
	dispatched := g.router.DispatchAll(g.world)
	g.perf.Record(systems.PhaseTraits, time.Since(start))

	g.generation++
	report := Report{
		Generation: g.generation,
		Tick:       g.tick,
		Breeding:   breeding,
		Dispatched: dispatched,
	}

	start = time.Now()
	g.flushTelemetry(report)
	g.perf.Record(systems.PhaseTelemetry, time.Since(start))

	return report
}

// Run steps until generations have completed or ctx is cancelled.
// generations <= 0 runs until cancelled.
func (g *Game) Run(ctx context.Context, generations int) error {
	for generations <= 0 || g.generation < generations {
		if err := ctx.Err(); err != nil {
			slog.Info("run cancelled", "generation", g.generation)
			return err
		}
		g.Step()
	}

	if g.logStats {
		g.logPerfStats()
	}
	slog.Info("run complete",
		"generations", g.generation,
		"tick", g.tick,
		"traits_applied", g.traits.Applied(),
		"traits_failed", g.traits.Failed(),
	)
	return nil
}
