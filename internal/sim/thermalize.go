package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/physics"
)

type Config struct {
	StepsPerParticle    int
	TargetRatio         float64
	InitialDisplacement float64
	Rewrap              RewrapMode
}

func DefaultConfig() Config {
	return Config{
		StepsPerParticle:    100,
		TargetRatio:         0.3,
		InitialDisplacement: DefaultMaxDisplacement,
		Rewrap:              RewrapAll,
	}
}

// Cycles is the number of trial steps in a run: ⌊stepsPerParticle·n / targetRatio⌋.
func Cycles(stepsPerParticle, n int, targetRatio float64) int {
	return int(math.Floor(float64(stepsPerParticle*n) / targetRatio))
}

// Thermalizer drives a fixed number of sequential trial moves on one system.
// It owns the system and its RunContext until the run ends.
type Thermalizer struct {
	sys       *physics.System
	mover     *Mover
	target    float64
	cycles    int
	step      int
	rc        dynamo.RunContext
	observers []dynamo.Observer
}

// NewThermalizer starts a run: the energy is evaluated over all pairs once here
// and only updated incrementally afterwards.
func NewThermalizer(sys *physics.System, eval *physics.Evaluator, rng dynamo.Uniform, cfg Config) (*Thermalizer, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return &Thermalizer{
		sys:    sys,
		mover:  NewMover(sys, eval, rng, cfg.Rewrap),
		target: cfg.TargetRatio,
		cycles: Cycles(cfg.StepsPerParticle, sys.N, cfg.TargetRatio),
		rc: dynamo.RunContext{
			Energy:          eval.SystemEnergy(sys),
			MaxDisplacement: cfg.InitialDisplacement,
		},
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.StepsPerParticle <= 0 {
		return dynamo.Bounds("steps_per_particle", cfg.StepsPerParticle, "> 0")
	}
	if !(cfg.TargetRatio > 0 && cfg.TargetRatio < 1) {
		return dynamo.Bounds("target_ratio", cfg.TargetRatio, "in (0, 1)")
	}
	if !(cfg.InitialDisplacement > 0) {
		return dynamo.Bounds("initial_displacement", cfg.InitialDisplacement, "> 0")
	}
	if _, err := ParseRewrapMode(string(cfg.Rewrap)); err != nil {
		return fmt.Errorf("thermalizer: %w", err)
	}
	return nil
}

func (t *Thermalizer) AddObserver(o dynamo.Observer) { t.observers = append(t.observers, o) }

func (t *Thermalizer) Cycles() int                { return t.cycles }
func (t *Thermalizer) Steps() int                 { return t.step }
func (t *Thermalizer) Done() bool                 { return t.step >= t.cycles }
func (t *Thermalizer) Context() dynamo.RunContext { return t.rc }
func (t *Thermalizer) System() *physics.System    { return t.sys }

// Step runs one trial move, adapts the step size and reports the result.
// It returns false once all cycles have been executed.
func (t *Thermalizer) Step() (dynamo.Record, bool) {
	if t.Done() {
		return dynamo.Record{}, false
	}

	t.mover.Step(&t.rc)
	t.rc.MaxDisplacement = Adjust(t.rc.MaxDisplacement, t.rc.Accepted, t.rc.Attempted, t.target)
	t.step++

	rec := dynamo.Record{
		Step:            t.step,
		Energy:          t.rc.Energy,
		MaxDisplacement: t.rc.MaxDisplacement,
		Ratio:           t.rc.Ratio(),
	}
	for _, obs := range t.observers {
		obs.OnStep(rec)
	}
	return rec, true
}

// Run executes the remaining cycles and returns the final system and counters.
func (t *Thermalizer) Run() (*physics.System, dynamo.RunContext) {
	for !t.Done() {
		t.Step()
	}
	return t.sys, t.rc
}
