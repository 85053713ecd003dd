package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/physics"
)

// RDF is a binned pair correlation function.
type RDF struct {
	BinWidth float64
	R        []float64 // bin centres
	G        []float64
}

// RadialDistribution histograms all pair separations below half the box
// length and normalizes each shell by its ideal-gas pair count.
func RadialDistribution(s *physics.System, dist physics.DistanceFunc, bins int) (*RDF, error) {
	if bins < 1 {
		return nil, dynamo.Bounds("bins", bins, ">= 1")
	}
	if s.N < 2 {
		return nil, fmt.Errorf("rdf needs at least two particles, have %d", s.N)
	}
	if dist == nil {
		dist = physics.Distance
	}

	rmax := s.BoxLength / 2
	dr := rmax / float64(bins)
	counts := make([]int, bins)

	for i := 0; i < s.N-1; i++ {
		for j := i + 1; j < s.N; j++ {
			r := dist(s, i, j)
			if r >= rmax {
				continue
			}
			k := int(r / dr)
			if k >= bins {
				k = bins - 1
			}
			counts[k]++
		}
	}

	out := &RDF{BinWidth: dr, R: make([]float64, bins), G: make([]float64, bins)}
	for k, c := range counts {
		lo, hi := float64(k)*dr, float64(k+1)*dr
		shell := 4.0 / 3.0 * math.Pi * (hi*hi*hi - lo*lo*lo)
		ideal := shell * s.Density * float64(s.N) / 2
		out.R[k] = lo + dr/2
		out.G[k] = float64(c) / ideal
	}
	return out, nil
}

// Peak returns the position and height of the largest g(r).
func (r *RDF) Peak() (float64, float64) {
	if len(r.G) == 0 {
		return 0, 0
	}
	best := 0
	for k, g := range r.G {
		if g > r.G[best] {
			best = k
		}
	}
	return r.R[best], r.G[best]
}
