package physics

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/liquid/internal/dynamo"
)

// MaxLatticeSize bounds latticeSize so that latticeSize³ positions fit in memory.
const MaxLatticeSize = 512

// System is a periodic cubic box of identical point particles.
// Everything except Config is fixed at construction.
type System struct {
	N            int
	LatticeSize  int
	FillFraction float64
	Density      float64
	BoxLength    float64
	Config       dynamo.Configuration
}

// NewSystem builds a system of latticeSize³ particles at the given fill
// fraction, laid out on a simple cubic lattice.
func NewSystem(latticeSize int, fillFraction float64) (*System, error) {
	if latticeSize <= 0 {
		return nil, dynamo.Bounds("lattice_size", latticeSize, "> 0")
	}
	if latticeSize > MaxLatticeSize {
		return nil, fmt.Errorf("%w: %d³ particles", dynamo.ErrAllocation, latticeSize)
	}
	if !(fillFraction > 0 && fillFraction < 1) {
		return nil, dynamo.Bounds("fill_fraction", fillFraction, "in (0, 1)")
	}

	n := latticeSize * latticeSize * latticeSize
	density := 6 * fillFraction / math.Pi

	s := &System{
		N:            n,
		LatticeSize:  latticeSize,
		FillFraction: fillFraction,
		Density:      density,
		BoxLength:    math.Cbrt(float64(n) / density),
	}
	s.Config = s.lattice()
	return s, nil
}

// lattice places particle p = (i·L + j)·L + k at ((i+½)g, (j+½)g, (k+½)g) with
// g = ∛density. g is not BoxLength/LatticeSize, so the lattice need not tile the box.
func (s *System) lattice() dynamo.Configuration {
	config := make(dynamo.Configuration, s.N)
	gap := math.Cbrt(s.Density)

	p := 0
	for i := 0; i < s.LatticeSize; i++ {
		for j := 0; j < s.LatticeSize; j++ {
			for k := 0; k < s.LatticeSize; k++ {
				config[p] = dynamo.Vec3{
					(float64(i) + 0.5) * gap,
					(float64(j) + 0.5) * gap,
					(float64(k) + 0.5) * gap,
				}
				p++
			}
		}
	}
	return config
}

// Gap is the lattice spacing used by the initial configuration.
func (s *System) Gap() float64 { return math.Cbrt(s.Density) }

func (s *System) Clone() *System {
	c := *s
	c.Config = s.Config.Clone()
	return &c
}

// Positions returns a copy of the current configuration.
func (s *System) Positions() dynamo.Configuration { return s.Config.Clone() }

// Describe writes the particle count, box length and every position to w.
func (s *System) Describe(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Number of particles: %d\n", s.N)
	fmt.Fprintf(bw, "Box length: %f\n", s.BoxLength)
	fmt.Fprintln(bw, "Configuration:")
	for i, p := range s.Config {
		fmt.Fprintf(bw, "p_%d = (%.2f, %.2f, %.2f)\n", i, p[0], p[1], p[2])
	}
	return bw.Flush()
}
