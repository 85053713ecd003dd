package dynamo

import "math"

// Vec3 is a position in the simulation box.
type Vec3 [3]float64

func (v Vec3) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Configuration holds particle positions; the index is the particle identity.
type Configuration []Vec3

func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	copy(out, c)
	return out
}

func (c Configuration) IsValid() bool {
	for _, p := range c {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// Uniform is the random stream consumed by a run.
type Uniform interface {
	// Float64 returns a draw in [0, 1).
	Float64() float64
	// IntN returns a draw in [0, n).
	IntN(n int) int
}

// RunContext carries the mutable counters of a thermalization run.
// Only the thermalization loop and the mover write to it.
type RunContext struct {
	Energy          float64 `json:"energy"`
	Accepted        int     `json:"accepted"`
	Attempted       int     `json:"attempted"`
	MaxDisplacement float64 `json:"max_displacement"`
}

// Ratio returns the cumulative acceptance ratio, zero before the first attempt.
func (rc RunContext) Ratio() float64 {
	if rc.Attempted == 0 {
		return 0
	}
	return float64(rc.Accepted) / float64(rc.Attempted)
}

// Record is the progress report emitted after each step.
type Record struct {
	Step            int
	Energy          float64
	MaxDisplacement float64
	Ratio           float64
}

type Observer interface {
	OnStep(r Record)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(r Record)

func (f ObserverFunc) OnStep(r Record) { f(r) }

// Potential is a pairwise interaction energy as a function of separation.
type Potential interface {
	Name() string
	Radial(r float64) float64
}
