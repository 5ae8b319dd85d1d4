// Package registry holds the genome schema of every species.
package registry

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"

	"github.com/pthm-cable/genome/config"
	"github.com/pthm-cable/genome/genome"
)

// Definition is one species' genome schema.
type Definition struct {
	ID       string
	Length   int
	Alphabet string
	Map      *genome.Map
}

// Registry manages species genome definitions.
type Registry struct {
	defs  map[string]*Definition
	order []string
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition and freezes its map.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.ID == "" {
		return fmt.Errorf("definition missing id")
	}
	if def.Map == nil {
		return fmt.Errorf("species %q: nil genome map", def.ID)
	}
	if def.Length <= 0 {
		return fmt.Errorf("species %q: length must be positive", def.ID)
	}
	if def.Alphabet == "" {
		return fmt.Errorf("species %q: empty alphabet", def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("species %q already registered", def.ID)
	}
	def.Map.Freeze()
	r.defs[def.ID] = def
	r.order = append(r.order, def.ID)
	return nil
}

// Get returns the definition for id.
func (r *Registry) Get(id string) (*Definition, error) {
	r.mu.RLock()
	def, ok := r.defs[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("species %q not registered", id)
	}
	return def, nil
}

// IDs returns species ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// FromConfig builds a registry from the species schemas in cfg.
func FromConfig(cfg *config.Config) (*Registry, error) {
	r := NewRegistry()
	for i := range cfg.Species {
		def, err := BuildDefinition(&cfg.Species[i], cfg.Mutation.Chance, cfg.Breeding.MinimumSimilarity)
		if err != nil {
			return nil, err
		}
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// BuildDefinition turns one species schema into a definition.
func BuildDefinition(sp *config.SpeciesConfig, mutationChance, minSimilarity float64) (*Definition, error) {
	if sp.Alphabet == "" {
		return nil, fmt.Errorf("species %q: empty alphabet", sp.Name)
	}
	m := genome.NewMap()
	mutator := genome.AlphabetMutator{Alphabet: sp.Alphabet}

	for _, p := range sp.Properties {
		want, err := ValueType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("species %q: property %q: %w", sp.Name, p.Name, err)
		}
		out, fn, err := Transform(p.Transform, sp.Palette)
		if err != nil {
			return nil, fmt.Errorf("species %q: property %q: %w", sp.Name, p.Name, err)
		}
		if out != want {
			return nil, fmt.Errorf("species %q: property %q: transform %q produces %v, declared %s", sp.Name, p.Name, p.Transform, out, p.Type)
		}
		algo, err := Algorithm(p.Breeding, minSimilarity, mutationChance, mutator)
		if err != nil {
			return nil, fmt.Errorf("species %q: property %q: %w", sp.Name, p.Name, err)
		}
		if _, ok := algo.(genome.Diploid); ok && len(p.Indices)%2 != 0 {
			return nil, fmt.Errorf("species %q: property %q: diploid breeding needs an even number of indices, got %d", sp.Name, p.Name, len(p.Indices))
		}
		if err := checkAlphabet(sp.Alphabet, len(p.Indices), fn); err != nil {
			return nil, fmt.Errorf("species %q: property %q: transform %q: %w", sp.Name, p.Name, p.Transform, err)
		}
		if err := m.AddProperty(p.Name, p.Indices, want, algo, fn); err != nil {
			return nil, fmt.Errorf("species %q: %w", sp.Name, err)
		}
	}

	return &Definition{
		ID:       sp.Name,
		Length:   sp.Length,
		Alphabet: sp.Alphabet,
		Map:      m,
	}, nil
}

// checkAlphabet fails if transform cannot decode a run of any single allele,
// so every gene string drawn from the alphabet is expressible.
func checkAlphabet(alphabet string, n int, transform func(string) (any, error)) error {
	for _, c := range alphabet {
		if _, err := transform(strings.Repeat(string(c), n)); err != nil {
			return fmt.Errorf("cannot decode allele %q: %w", c, err)
		}
	}
	return nil
}

// Algorithm resolves a breeding algorithm name.
func Algorithm(name string, minSimilarity, mutationChance float64, mutator genome.GeneMutator) (genome.BreedingAlgorithm, error) {
	switch name {
	case "", "monoploid":
		return genome.Monoploid{
			MinimumSimilarity: minSimilarity,
			MutationChance:    mutationChance,
			Mutator:           mutator,
		}, nil
	case "diploid":
		return genome.Diploid{
			MinimumSimilarity: minSimilarity,
			MutationChance:    mutationChance,
			Mutator:           mutator,
		}, nil
	}
	return nil, fmt.Errorf("unknown breeding algorithm %q", name)
}

// Randomize returns a founder gene string drawn uniformly from the definition's alphabet.
func Randomize(rng *rand.Rand, def *Definition) genome.Genes {
	genes := make([]byte, def.Length)
	for i := range genes {
		genes[i] = def.Alphabet[rng.Intn(len(def.Alphabet))]
	}
	return genome.Genes(genes)
}
