package sim

import "math/rand/v2"

// RNG is a seeded PCG stream. Two RNGs with the same seed produce the same draws.
type RNG struct {
	r *rand.Rand
}

func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

func (r *RNG) Float64() float64 { return r.r.Float64() }

func (r *RNG) IntN(n int) int { return r.r.IntN(n) }
