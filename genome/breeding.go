package genome

import (
	"fmt"
	"math/rand"
)

// BreedingAlgorithm decides whether two parent gene strings can be crossed and
// produces the offspring's gene string.
type BreedingAlgorithm interface {
	CanCross(a, b string) bool
	ProduceCross(rng *rand.Rand, a, b string) (string, error)
}

// GeneMutator replaces a single allele.
type GeneMutator interface {
	MutateGene(rng *rand.Rand, index int, old byte) byte
}

// AlphabetMutator replaces an allele with a random symbol from Alphabet.
type AlphabetMutator struct {
	Alphabet string
}

// MutateGene picks a random symbol. An empty alphabet leaves the allele unchanged.
func (m AlphabetMutator) MutateGene(rng *rand.Rand, _ int, old byte) byte {
	if len(m.Alphabet) == 0 {
		return old
	}
	return m.Alphabet[rng.Intn(len(m.Alphabet))]
}

// Monoploid crosses single-allele gene strings: every locus of the child comes
// from one parent, picked at random.
type Monoploid struct {
	MinimumSimilarity float64 // fraction of equal loci required to cross (0 disables)
	MutationChance    float64 // per-locus mutation probability
	Mutator           GeneMutator
}

// CanCross requires equal length and sufficient similarity.
func (m Monoploid) CanCross(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return Similarity(a, b) >= m.MinimumSimilarity
}

// ProduceCross builds the child gene string.
func (m Monoploid) ProduceCross(rng *rand.Rand, a, b string) (string, error) {
	if !m.CanCross(a, b) {
		return "", fmt.Errorf("monoploid cross of %q and %q: %w", a, b, ErrIncompatible)
	}
	child := make([]byte, len(a))
	for i := range child {
		if rng.Intn(2) == 0 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
		child[i] = mutate(rng, m.Mutator, m.MutationChance, i, child[i])
	}
	return string(child), nil
}

// Diploid crosses gene strings made of allele pairs. Loci 2k and 2k+1 form one
// pair; the child receives one random allele of each parent's pair.
type Diploid struct {
	MinimumSimilarity float64
	MutationChance    float64
	Mutator           GeneMutator
}

// CanCross requires equal, even length and sufficient similarity.
func (d Diploid) CanCross(a, b string) bool {
	if len(a) != len(b) || len(a)%2 != 0 {
		return false
	}
	return Similarity(a, b) >= d.MinimumSimilarity
}

// ProduceCross builds the child gene string.
func (d Diploid) ProduceCross(rng *rand.Rand, a, b string) (string, error) {
	if !d.CanCross(a, b) {
		return "", fmt.Errorf("diploid cross of %q and %q: %w", a, b, ErrIncompatible)
	}
	child := make([]byte, len(a))
	for i := 0; i < len(child); i += 2 {
		child[i] = mutate(rng, d.Mutator, d.MutationChance, i, a[i+rng.Intn(2)])
		child[i+1] = mutate(rng, d.Mutator, d.MutationChance, i+1, b[i+rng.Intn(2)])
	}
	return string(child), nil
}

// Similarity returns the fraction of loci at which a and b carry the same allele.
// Strings of different length have similarity 0; two empty strings have 1.
func Similarity(a, b string) float64 {
	if len(a) != len(b) {
		return 0
	}
	if len(a) == 0 {
		return 1
	}
	same := 0
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			same++
		}
	}
	return float64(same) / float64(len(a))
}

func mutate(rng *rand.Rand, m GeneMutator, chance float64, index int, c byte) byte {
	if m == nil || chance <= 0 {
		return c
	}
	if rng.Float64() < chance {
		return m.MutateGene(rng, index, c)
	}
	return c
}
