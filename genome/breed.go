package genome

import (
	"fmt"
	"math/rand"
)

// CanBreed reports whether every property's algorithm accepts the parents'
// alleles for that property.
func (m *Map) CanBreed(a, b Genes) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, name := range m.order {
		d := m.props[name]
		sa, err := d.extract(a)
		if err != nil {
			return false
		}
		sb, err := d.extract(b)
		if err != nil {
			return false
		}
		if !d.breeding.CanCross(sa, sb) {
			return false
		}
	}
	return true
}

// Breed produces a child gene string from two parents.
//
// Each property's algorithm crosses the parents' alleles for that property and the
// result is written back at the property's loci. Loci that belong to no property
// are taken from a randomly chosen parent. Where properties share a locus the
// later-registered property wins.
func (m *Map) Breed(rng *rand.Rand, a, b Genes) (Genes, error) {
	if a.Len() != b.Len() {
		return "", fmt.Errorf("parent lengths %d and %d: %w", a.Len(), b.Len(), ErrIncompatible)
	}

	child := make([]byte, a.Len())
	for i := range child {
		if rng.Intn(2) == 0 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}

	for _, name := range m.order {
		d := m.props[name]
		sa, err := d.extract(a)
		if err != nil {
			return "", err
		}
		sb, err := d.extract(b)
		if err != nil {
			return "", err
		}
		if !d.breeding.CanCross(sa, sb) {
			return "", fmt.Errorf("property %q: %w", name, ErrIncompatible)
		}
		cross, err := d.breeding.ProduceCross(rng, sa, sb)
		if err != nil {
			return "", fmt.Errorf("property %q: %w", name, err)
		}
		if len(cross) != len(d.indices) {
			return "", fmt.Errorf("property %q: cross produced %d alleles, want %d: %w", name, len(cross), len(d.indices), ErrIncompatible)
		}
		for j, idx := range d.indices {
			child[idx] = cross[j]
		}
	}

	return Genes(child), nil
}
