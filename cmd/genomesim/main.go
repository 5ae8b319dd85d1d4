// Command genomesim breeds genome-bearing organisms headlessly and records
// how their expressed traits drift across generations.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/genome/config"
	"github.com/pthm-cable/genome/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	generations := flag.Int("generations", 0, "Generations to run (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Simulation.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	gens := cfg.Simulation.Generations
	if *generations > 0 {
		gens = *generations
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"generations", gens,
		"species", g.Registry().IDs(),
	)

	runErr := g.Run(ctx, gens)
	if err := g.Unload(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		slog.Error("simulation failed", "error", runErr)
		os.Exit(1)
	}
}
