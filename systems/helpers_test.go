package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/genome/components"
	"github.com/pthm-cable/genome/config"
	"github.com/pthm-cable/genome/genome"
	"github.com/pthm-cable/genome/registry"
)

// testSpecies is a four-locus species: size (hex 0-1), color (palette 2),
// fertility (unit 3).
func testSpecies() config.SpeciesConfig {
	return config.SpeciesConfig{
		Name:     "moss",
		Length:   4,
		Alphabet: "0123456789ABCDEF",
		Breeding: "monoploid",
		Palette:  []string{"red", "green", "blue"},
		Properties: []config.PropertyConfig{
			{Name: "size", Indices: []int{0, 1}, Type: "int", Transform: "hex"},
			{Name: "color", Indices: []int{2}, Type: "string", Transform: "palette"},
			{Name: "fertility", Indices: []int{3}, Type: "float", Transform: "unit"},
		},
	}
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	sp := testSpecies()
	def, err := registry.BuildDefinition(&sp, 0, 0)
	if err != nil {
		t.Fatalf("BuildDefinition: %v", err)
	}
	reg := registry.NewRegistry()
	if err := reg.Register(def); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return reg
}

// organismSpawner creates organisms with all four organism components.
type organismSpawner struct {
	mapper *ecs.Map4[components.Genome, components.Lineage, components.Appearance, components.Vitality]
}

func newSpawner(w *ecs.World) *organismSpawner {
	return &organismSpawner{
		mapper: ecs.NewMap4[components.Genome, components.Lineage, components.Appearance, components.Vitality](w),
	}
}

func (s *organismSpawner) create(species string, genes genome.Genes, lineage components.Lineage) ecs.Entity {
	return s.mapper.NewEntity(
		&components.Genome{Species: species, Genes: genes},
		&lineage,
		&components.Appearance{},
		&components.Vitality{},
	)
}
