// Package genome maps named organism properties onto gene strings and breeds
// gene strings together.
//
// A gene string holds one allele character per locus. Index i refers to the same
// locus for every organism sharing a Map. Properties are decoded by reading the
// characters at their registered indices, in order, and passing the concatenation
// to the property's transform.
package genome

// Genes is an organism's full genetic encoding.
type Genes string

// Len returns the number of loci.
func (g Genes) Len() int {
	return len(g)
}

// At returns the allele at index i.
func (g Genes) At(i int) (byte, bool) {
	if i < 0 || i >= len(g) {
		return 0, false
	}
	return g[i], true
}
