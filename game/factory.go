package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genome/components"
	"github.com/pthm-cable/genome/genome"
	"github.com/pthm-cable/genome/registry"
)

// spawnFounders creates n random organisms per species and expresses their traits.
func (g *Game) spawnFounders(n int) error {
	for _, id := range g.registry.IDs() {
		def, err := g.registry.Get(id)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			genes := registry.Randomize(g.rng, def)
			entity := g.createOrganism(id, genes, components.Lineage{BornTick: g.tick})
			if err := g.traits.Express(entity); err != nil {
				return fmt.Errorf("expressing founder of %q: %w", id, err)
			}
		}
	}
	return nil
}

// createOrganism creates an organism with blank expressed components.
// Traits are filled in by the trait system.
func (g *Game) createOrganism(species string, genes genome.Genes, lineage components.Lineage) ecs.Entity {
	gen := &components.Genome{Species: species, Genes: genes}
	app := &components.Appearance{}
	vit := &components.Vitality{}
	entity := g.organismMapper.NewEntity(gen, &lineage, app, vit)

	slog.Debug("organism created",
		"entity", entity.ID(),
		"species", species,
		"genes", string(genes),
		"generation", lineage.Generation,
	)
	return entity
}
