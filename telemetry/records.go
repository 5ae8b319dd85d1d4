package telemetry

// OrganismRecord is one organism's genome and expressed traits.
type OrganismRecord struct {
	Generation int     `csv:"generation"`
	Tick       int64   `csv:"tick"`
	Entity     uint32  `csv:"entity"`
	Species    string  `csv:"species"`
	Lineage    int     `csv:"lineage_generation"`
	ParentA    uint32  `csv:"parent_a"`
	ParentB    uint32  `csv:"parent_b"`
	Genes      string  `csv:"genes"`
	Size       int     `csv:"size"`
	Color      string  `csv:"color"`
	Pattern    string  `csv:"pattern"`
	Speed      float64 `csv:"speed"`
	Fertility  float64 `csv:"fertility"`
	Offspring  int     `csv:"offspring"`
}
