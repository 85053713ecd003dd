package metrics

import (
	"math"

	"github.com/san-kum/liquid/internal/dynamo"
)

// Metric accumulates a scalar over the records of a run.
type Metric interface {
	Name() string
	Observe(r dynamo.Record)
	Value() float64
	Reset()
}

type MeanEnergy struct {
	samples int
	total   float64
}

func NewMeanEnergy() *MeanEnergy { return &MeanEnergy{} }

func (m *MeanEnergy) Name() string { return "mean_energy" }

func (m *MeanEnergy) Observe(r dynamo.Record) {
	m.total += r.Energy
	m.samples++
}

func (m *MeanEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEnergy) Reset() { *m = MeanEnergy{} }

// EnergyDrift is the largest relative change of the energy from its first observed value.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(r dynamo.Record) {
	if e.samples == 0 {
		e.initial = r.Energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(r.Energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() { *e = EnergyDrift{} }

// Acceptance tracks the most recent cumulative acceptance ratio.
type Acceptance struct {
	ratio float64
}

func NewAcceptance() *Acceptance { return &Acceptance{} }

func (a *Acceptance) Name() string            { return "acceptance_ratio" }
func (a *Acceptance) Observe(r dynamo.Record) { a.ratio = r.Ratio }
func (a *Acceptance) Value() float64          { return a.ratio }
func (a *Acceptance) Reset()                  { a.ratio = 0 }

// StepSize counts how many steps the maximum displacement stayed within
// [lo, hi] and reports that fraction.
type StepSize struct {
	lo, hi    float64
	inside    int
	samples   int
	lastDrmax float64
}

func NewStepSize(lo, hi float64) *StepSize {
	return &StepSize{lo: lo, hi: hi}
}

func (s *StepSize) Name() string { return "step_size_in_band" }

func (s *StepSize) Observe(r dynamo.Record) {
	s.samples++
	s.lastDrmax = r.MaxDisplacement
	if r.MaxDisplacement >= s.lo && r.MaxDisplacement <= s.hi {
		s.inside++
	}
}

func (s *StepSize) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.inside) / float64(s.samples)
}

func (s *StepSize) Last() float64 { return s.lastDrmax }

func (s *StepSize) Reset() { *s = StepSize{lo: s.lo, hi: s.hi} }

// Set fans records out to several metrics and is itself an observer.
type Set []Metric

func Default() Set {
	return Set{NewMeanEnergy(), NewEnergyDrift(), NewAcceptance(), NewStepSize(1e-3, 1)}
}

func (s Set) OnStep(r dynamo.Record) {
	for _, m := range s {
		m.Observe(r)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}
