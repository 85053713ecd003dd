package physics

import "github.com/san-kum/liquid/internal/dynamo"

// Evaluator sums a pair potential, truncated at half the box length.
type Evaluator struct {
	Potential dynamo.Potential
	Distance  DistanceFunc
}

// NewEvaluator uses the direct (non minimum-image) distance.
func NewEvaluator(pot dynamo.Potential) *Evaluator {
	return &Evaluator{Potential: pot, Distance: Distance}
}

// Pair returns the interaction of i and j, zero at or beyond BoxLength/2.
func (e *Evaluator) Pair(s *System, i, j int) float64 {
	r := e.Distance(s, i, j)
	if r >= s.BoxLength/2 {
		return 0
	}
	return e.Potential.Radial(r)
}

// ParticleEnergy is the interaction of particle i with every other particle.
func (e *Evaluator) ParticleEnergy(s *System, i int) float64 {
	var u float64
	for j := 0; j < s.N; j++ {
		if j != i {
			u += e.Pair(s, i, j)
		}
	}
	return u
}

// SystemEnergy sums Pair over all unordered pairs.
func (e *Evaluator) SystemEnergy(s *System) float64 {
	var u float64
	for i := 0; i < s.N-1; i++ {
		for j := i + 1; j < s.N; j++ {
			u += e.Pair(s, i, j)
		}
	}
	return u
}
