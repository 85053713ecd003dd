package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/physics"
)

type Registry struct {
	potentials map[string]func(config.PotentialConfig) (dynamo.Potential, error)
	distances  map[string]physics.DistanceFunc
}

func NewRegistry() *Registry {
	r := &Registry{
		potentials: make(map[string]func(config.PotentialConfig) (dynamo.Potential, error)),
		distances:  make(map[string]physics.DistanceFunc),
	}

	r.potentials["phs"] = func(pc config.PotentialConfig) (dynamo.Potential, error) {
		return physics.NewPseudoHardSphere(pc.Exponent, pc.Temperature)
	}
	r.potentials["ideal"] = func(config.PotentialConfig) (dynamo.Potential, error) {
		return ideal{}, nil
	}

	r.distances["direct"] = physics.Distance
	r.distances["minimum-image"] = physics.MinimumImageDistance

	return r
}

func (r *Registry) GetPotential(pc config.PotentialConfig) (dynamo.Potential, error) {
	name := pc.Name
	if name == "" {
		name = "phs"
	}
	fn, ok := r.potentials[name]
	if !ok {
		return nil, fmt.Errorf("%w: potential %q", dynamo.ErrUnknownMode, name)
	}
	return fn(pc)
}

func (r *Registry) GetDistance(name string) (physics.DistanceFunc, error) {
	if name == "" {
		name = "direct"
	}
	fn, ok := r.distances[name]
	if !ok {
		return nil, fmt.Errorf("%w: distance %q", dynamo.ErrUnknownMode, name)
	}
	return fn, nil
}

func (r *Registry) ListPotentials() []string { return sortedKeys(r.potentials) }
func (r *Registry) ListDistances() []string  { return sortedKeys(r.distances) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ideal has no interactions; every move is accepted.
type ideal struct{}

func (ideal) Name() string           { return "ideal" }
func (ideal) Radial(float64) float64 { return 0 }
