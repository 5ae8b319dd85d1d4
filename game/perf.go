package game

import (
	"cmp"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// perfWindow is the number of recent generations each phase keeps.
const perfWindow = 64

// PerfStats keeps a rolling window of per-phase durations, in nanoseconds.
type PerfStats struct {
	phases map[string][]float64
}

// NewPerfStats creates an empty tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{phases: make(map[string][]float64)}
}

// Record adds one generation's duration for phase.
func (p *PerfStats) Record(phase string, d time.Duration) {
	s := append(p.phases[phase], float64(d))
	if len(s) > perfWindow {
		s = s[len(s)-perfWindow:]
	}
	p.phases[phase] = s
}

// Avg returns the mean duration of phase over the window.
func (p *PerfStats) Avg(phase string) time.Duration {
	s := p.phases[phase]
	if len(s) == 0 {
		return 0
	}
	return time.Duration(stat.Mean(s, nil))
}

// Max returns the slowest recorded duration of phase.
func (p *PerfStats) Max(phase string) time.Duration {
	s := p.phases[phase]
	if len(s) == 0 {
		return 0
	}
	return time.Duration(floats.Max(s))
}

// Total returns the sum of all phase averages, i.e. a typical generation.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for phase := range p.phases {
		total += p.Avg(phase)
	}
	return total
}

// SortedNames returns phases ordered slowest first.
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.phases))
	for phase := range p.phases {
		names = append(names, phase)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(p.Avg(b), p.Avg(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}
