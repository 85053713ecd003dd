package physics

import "math"

// DistanceFunc measures the separation of particles i and j.
type DistanceFunc func(s *System, i, j int) float64

// Wrap folds a coordinate into [0, BoxLength) as |x| mod BoxLength.
// Negative excursions are mirrored onto the positive side, not shifted by a box length.
func (s *System) Wrap(x float64) float64 {
	return math.Mod(math.Abs(x), s.BoxLength)
}

// RewrapAll applies Wrap to every coordinate of every particle.
func (s *System) RewrapAll() {
	for i := range s.Config {
		s.RewrapParticle(i)
	}
}

// RewrapParticle applies Wrap to the coordinates of particle i only.
func (s *System) RewrapParticle(i int) {
	p := &s.Config[i]
	for a := range p {
		p[a] = s.Wrap(p[a])
	}
}

// Distance is the straight Euclidean distance between the wrapped positions
// of i and j. No minimum-image correction is applied across the boundary.
func Distance(s *System, i, j int) float64 {
	var sum float64
	for a := 0; a < 3; a++ {
		d := s.Wrap(s.Config[i][a]) - s.Wrap(s.Config[j][a])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// MinimumImageDistance is the shortest distance between i and j over all
// periodic images. It is not the default geometry.
func MinimumImageDistance(s *System, i, j int) float64 {
	var sum float64
	for a := 0; a < 3; a++ {
		d := s.Wrap(s.Config[i][a]) - s.Wrap(s.Config[j][a])
		d -= s.BoxLength * math.Round(d/s.BoxLength)
		sum += d * d
	}
	return math.Sqrt(sum)
}
