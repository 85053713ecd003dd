package experiment

import (
	"fmt"
	"time"

	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/physics"
	"github.com/san-kum/liquid/internal/sim"
)

type Result struct {
	System        *physics.System
	Context       dynamo.RunContext
	Cycles        int
	InitialEnergy float64
	Elapsed       time.Duration
}

// Experiment is one configured thermalization run.
type Experiment struct {
	cfg         *config.Config
	system      *physics.System
	evaluator   *physics.Evaluator
	thermalizer *sim.Thermalizer
}

func New(cfg *config.Config, registry *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pot, err := registry.GetPotential(cfg.Potential)
	if err != nil {
		return nil, err
	}
	dist, err := registry.GetDistance(cfg.Distance)
	if err != nil {
		return nil, err
	}

	system, err := physics.NewSystem(cfg.LatticeSize, cfg.FillFraction)
	if err != nil {
		return nil, fmt.Errorf("new system: %w", err)
	}
	eval := &physics.Evaluator{Potential: pot, Distance: dist}

	th, err := sim.NewThermalizer(system, eval, sim.NewRNG(cfg.Seed), cfg.SimConfig())
	if err != nil {
		return nil, err
	}

	return &Experiment{cfg: cfg, system: system, evaluator: eval, thermalizer: th}, nil
}

func (e *Experiment) AddObserver(o dynamo.Observer) { e.thermalizer.AddObserver(o) }

// Thermalizer exposes the loop for callers that step it themselves.
func (e *Experiment) Thermalizer() *sim.Thermalizer { return e.thermalizer }

func (e *Experiment) Evaluator() *physics.Evaluator { return e.evaluator }

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Run() *Result {
	initial := e.thermalizer.Context().Energy
	start := time.Now()
	system, rc := e.thermalizer.Run()
	return &Result{
		System:        system,
		Context:       rc,
		Cycles:        e.thermalizer.Cycles(),
		InitialEnergy: initial,
		Elapsed:       time.Since(start),
	}
}
