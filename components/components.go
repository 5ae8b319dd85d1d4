// Package components defines ECS components for genome-bearing organisms.
package components

import "github.com/pthm-cable/genome/genome"

// Genome holds an organism's species and gene string.
type Genome struct {
	Species string
	Genes   genome.Genes
}

// Lineage records ancestry.
type Lineage struct {
	Generation int
	ParentA    uint32 // Entity ID of first parent (0 = founder)
	ParentB    uint32 // Entity ID of second parent (0 = founder)
	BornTick   int64
}

// Appearance holds visible traits expressed from the genome.
type Appearance struct {
	Size    int    `trait:"size"`
	Color   string `trait:"color"`
	Pattern string `trait:"pattern"`
}

// Vitality holds behavioral traits expressed from the genome.
type Vitality struct {
	Speed     float64 `trait:"speed"`
	Fertility float64 `trait:"fertility"` // Mating success probability
	Offspring int     `trait:"-"`         // Children produced; not genetic
}
