// Package optim searches configuration grids for the most efficient
// thermalization settings.
package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/liquid/internal/config"
)

// Objective scores a configuration; lower is better.
type Objective func(cfg *config.Config) (float64, error)

type Point struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("grid needs one value list per parameter, have %d names and %d lists", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates objective at every grid point applied on top of base and
// returns the best point and all points sorted by value.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective) (Point, []Point, error) {
	points := make([]Point, 0, g.Size())
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, base, objective, &points); err != nil {
		return Point{}, points, err
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Value < points[j].Value })
	return points[0], points, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	objective Objective,
	points *[]Point,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}

		c := *base
		cfg := &c
		for name, v := range current {
			if err := cfg.SetParam(name, v); err != nil {
				return err
			}
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("grid point %v: %w", current, err)
		}

		val, err := objective(cfg)
		if err != nil {
			return err
		}
		if math.IsNaN(val) {
			val = math.Inf(1)
		}
		*points = append(*points, Point{Params: current, Value: val})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, base, objective, points); err != nil {
			return err
		}
	}
	return nil
}
