package systems

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genome/components"
	"github.com/pthm-cable/genome/event"
	"github.com/pthm-cable/genome/genome"
	"github.com/pthm-cable/genome/registry"
)

// OrganismCreator is called to create an offspring entity.
type OrganismCreator func(species string, genes genome.Genes, lineage components.Lineage) ecs.Entity

// BreedingStats summarizes one breeding pass.
type BreedingStats struct {
	Attempts     int
	Births       int
	Infertile    int // Rejected by the fertility roll
	Incompatible int // Rejected by the species' breeding algorithms
}

// BreedingSystem pairs organisms of the same species and produces offspring
// from their crossed genomes.
type BreedingSystem struct {
	filter      *ecs.Filter3[components.Genome, components.Lineage, components.Vitality]
	vitalityMap *ecs.Map[components.Vitality]
	registry    *registry.Registry
	queue       *event.Queue
	rng         *rand.Rand

	pairsPerGeneration int
	maxPopulation      int
}

// NewBreedingSystem creates a new breeding system.
func NewBreedingSystem(w *ecs.World, reg *registry.Registry, queue *event.Queue, rng *rand.Rand, pairsPerGeneration, maxPopulation int) *BreedingSystem {
	return &BreedingSystem{
		filter:             ecs.NewFilter3[components.Genome, components.Lineage, components.Vitality](w),
		vitalityMap:        ecs.NewMap[components.Vitality](w),
		registry:           reg,
		queue:              queue,
		rng:                rng,
		pairsPerGeneration: pairsPerGeneration,
		maxPopulation:      maxPopulation,
	}
}

// breeder holds data for a potential parent.
type breeder struct {
	entity     ecs.Entity
	genes      genome.Genes
	generation int
	fertility  float64
}

// Update runs one breeding pass and returns per-species stats. Offspring are
// created through create after the query has finished, then announced with a
// Birth event and one ModifyTrait event per expressed trait.
func (s *BreedingSystem) Update(tick int64, create OrganismCreator) map[string]BreedingStats {
	bySpecies := make(map[string][]breeder)

	query := s.filter.Query()
	for query.Next() {
		g, lin, vit := query.Get()
		bySpecies[g.Species] = append(bySpecies[g.Species], breeder{
			entity:     query.Entity(),
			genes:      g.Genes,
			generation: lin.Generation,
			fertility:  vit.Fertility,
		})
	}

	result := make(map[string]BreedingStats, len(bySpecies))
	for _, species := range s.registry.IDs() {
		group := bySpecies[species]
		if len(group) < 2 {
			continue
		}
		def, err := s.registry.Get(species)
		if err != nil {
			continue
		}

		var stats BreedingStats
		population := len(group)
		for i := 0; i < s.pairsPerGeneration; i++ {
			if s.maxPopulation > 0 && population >= s.maxPopulation {
				break
			}
			stats.Attempts++

			a, b := s.pickPair(group)
			if s.rng.Float64() >= (a.fertility+b.fertility)/2 {
				stats.Infertile++
				continue
			}

			child, err := def.Map.Breed(s.rng, a.genes, b.genes)
			if err != nil {
				stats.Incompatible++
				if !errors.Is(err, genome.ErrIncompatible) {
					slog.Warn("breeding failed", "species", species, "error", err)
				}
				continue
			}

			lineage := components.Lineage{
				Generation: max(a.generation, b.generation) + 1,
				ParentA:    a.entity.ID(),
				ParentB:    b.entity.ID(),
				BornTick:   tick,
			}
			entity := create(species, child, lineage)
			population++
			stats.Births++

			// Component pointers from the query are stale after entity creation.
			s.vitalityMap.Get(a.entity).Offspring++
			s.vitalityMap.Get(b.entity).Offspring++

			event.EmitBirth(s.queue, entity, event.BirthPayload{
				ParentA: a.entity,
				ParentB: b.entity,
				Species: species,
			}, tick)
			s.emitExpression(entity, def, tick)
		}
		result[species] = stats
	}

	return result
}

// pickPair selects two distinct members of group.
func (s *BreedingSystem) pickPair(group []breeder) (breeder, breeder) {
	i := s.rng.Intn(len(group))
	j := s.rng.Intn(len(group) - 1)
	if j >= i {
		j++
	}
	return group[i], group[j]
}

// emitExpression queues a ModifyTrait for every expressed trait the species defines.
func (s *BreedingSystem) emitExpression(entity ecs.Entity, def *registry.Definition, tick int64) {
	for _, t := range ExpressedComponents() {
		for _, trait := range components.Traits(t) {
			if _, ok := def.Map.Definition(trait); !ok {
				continue
			}
			event.EmitModifyTrait(s.queue, entity, event.ModifyTrait{ComponentType: t, TraitName: trait}, tick)
		}
	}
}
