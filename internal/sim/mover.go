package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/physics"
)

// RewrapMode selects how much of the configuration is folded back into the box after a trial move.
type RewrapMode string

const (
	// RewrapAll folds every particle after every move.
	RewrapAll RewrapMode = "all"
	// RewrapMoved folds only the displaced particle. Trajectories differ from RewrapAll.
	RewrapMoved RewrapMode = "moved"
)

func ParseRewrapMode(s string) (RewrapMode, error) {
	switch RewrapMode(s) {
	case "", RewrapAll:
		return RewrapAll, nil
	case RewrapMoved:
		return RewrapMoved, nil
	}
	return "", fmt.Errorf("%w: rewrap %q", dynamo.ErrUnknownMode, s)
}

// Mover performs single-particle Metropolis trial moves.
type Mover struct {
	sys    *physics.System
	eval   *physics.Evaluator
	rng    dynamo.Uniform
	rewrap RewrapMode
}

func NewMover(sys *physics.System, eval *physics.Evaluator, rng dynamo.Uniform, rewrap RewrapMode) *Mover {
	if rewrap == "" {
		rewrap = RewrapAll
	}
	return &Mover{sys: sys, eval: eval, rng: rng, rewrap: rewrap}
}

// Step proposes a displacement of one random particle and accepts it when
// exp(−ΔU) exceeds a fresh uniform draw. It reports whether the move was kept.
func (m *Mover) Step(rc *dynamo.RunContext) bool {
	s := m.sys
	i := m.rng.IntN(s.N)

	before := m.eval.ParticleEnergy(s, i)
	old := s.Config[i]

	for a := range s.Config[i] {
		s.Config[i][a] += rc.MaxDisplacement * (m.rng.Float64() - 0.5)
	}

	if m.rewrap == RewrapMoved {
		s.RewrapParticle(i)
	} else {
		s.RewrapAll()
	}

	delta := m.eval.ParticleEnergy(s, i) - before

	accepted := math.Exp(-delta) > m.rng.Float64()
	if accepted {
		rc.Accepted++
		rc.Energy += delta
	} else {
		s.Config[i] = old
	}
	rc.Attempted++

	return accepted
}
