package systems

// Phase names one step of a generation, in execution order.
type Phase struct {
	ID          string // Key used for perf tracking
	Name        string
	Description string
}

// Generation phase IDs.
const (
	PhaseBreeding  = "breeding"
	PhaseTraits    = "traits"
	PhaseTelemetry = "telemetry"
)

// SystemRegistry holds phase metadata so logs and perf tracking share names.
type SystemRegistry struct {
	phases []Phase
	index  map[string]int
}

// NewSystemRegistry returns the phases a generation runs.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{index: make(map[string]int)}
	r.Register(Phase{ID: PhaseBreeding, Name: "Breeding", Description: "Pairs organisms and crosses their genomes"})
	r.Register(Phase{ID: PhaseTraits, Name: "Traits", Description: "Expresses queued trait changes from genomes"})
	r.Register(Phase{ID: PhaseTelemetry, Name: "Telemetry", Description: "Summarizes and writes population stats"})
	return r
}

// Register adds a phase, or replaces the metadata of a known one in place.
func (r *SystemRegistry) Register(p Phase) {
	if i, ok := r.index[p.ID]; ok {
		r.phases[i] = p
		return
	}
	r.index[p.ID] = len(r.phases)
	r.phases = append(r.phases, p)
}

// Get returns the phase with id.
func (r *SystemRegistry) Get(id string) (Phase, bool) {
	i, ok := r.index[id]
	if !ok {
		return Phase{}, false
	}
	return r.phases[i], true
}

// GetName returns the display name for id, or id itself if unknown.
func (r *SystemRegistry) GetName(id string) string {
	if p, ok := r.Get(id); ok {
		return p.Name
	}
	return id
}

// IDs returns phase IDs in execution order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.phases))
	for i, p := range r.phases {
		ids[i] = p.ID
	}
	return ids
}
