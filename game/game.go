// Package game runs a headless population of genome-bearing organisms.
package game

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genome/components"
	"github.com/pthm-cable/genome/config"
	"github.com/pthm-cable/genome/event"
	"github.com/pthm-cable/genome/registry"
	"github.com/pthm-cable/genome/systems"
	"github.com/pthm-cable/genome/telemetry"
)

// Game holds the complete simulation state.
type Game struct {
	cfg      *config.Config
	world    *ecs.World
	rng      *rand.Rand
	registry *registry.Registry

	// Entity mapper for organisms
	organismMapper *ecs.Map4[
		components.Genome,
		components.Lineage,
		components.Appearance,
		components.Vitality,
	]
	organismFilter *ecs.Filter4[
		components.Genome,
		components.Lineage,
		components.Appearance,
		components.Vitality,
	]

	// Events
	queue  *event.Queue
	router *event.Router[*ecs.World]

	// Systems
	traits   *systems.TraitSystem
	breeding *systems.BreedingSystem

	// Output
	outputManager *telemetry.OutputManager
	perf          *PerfStats
	systemInfo    *systems.SystemRegistry
	logStats      bool

	// State
	tick       int64
	generation int
}

// NewGame creates a game from a loaded config.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	reg, err := registry.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building species registry: %w", err)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Telemetry.OutputDir
	}
	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	queue := event.NewQueue()

	g := &Game{
		cfg:      cfg,
		world:    world,
		rng:      rng,
		registry: reg,
		organismMapper: ecs.NewMap4[
			components.Genome,
			components.Lineage,
			components.Appearance,
			components.Vitality,
		](world),
		organismFilter: ecs.NewFilter4[
			components.Genome,
			components.Lineage,
			components.Appearance,
			components.Vitality,
		](world),
		queue:         queue,
		router:        event.NewRouter[*ecs.World](queue),
		traits:        systems.NewTraitSystem(world, reg),
		outputManager: om,
		perf:          NewPerfStats(),
		systemInfo:    systems.NewSystemRegistry(),
		logStats:      opts.LogStats || cfg.Telemetry.LogStats,
	}
	g.breeding = systems.NewBreedingSystem(world, reg, queue, rng,
		cfg.Simulation.PairsPerGeneration, cfg.Simulation.MaxPopulation)
	g.router.Register(g.traits)

	if err := g.spawnFounders(cfg.Simulation.Population); err != nil {
		om.Close()
		return nil, err
	}
	return g, nil
}

// Registry returns the species registry.
func (g *Game) Registry() *registry.Registry { return g.registry }

// World returns the ECS world.
func (g *Game) World() *ecs.World { return g.world }

// Tick returns the current tick.
func (g *Game) Tick() int64 { return g.tick }

// Generation returns the number of completed generations.
func (g *Game) Generation() int { return g.generation }

// Unload releases output resources.
func (g *Game) Unload() error {
	return g.outputManager.Close()
}
