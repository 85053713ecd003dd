package physics

import (
	"fmt"
	"math"
)

const (
	DefaultExponent    = 50.0
	DefaultTemperature = 1.4737
)

// PseudoHardSphere is the (λ, λ−1) Mie potential shifted to vanish at its minimum r = λ/(λ−1).
//
//	v(r) = (A/T)·(r^−λ − r^−(λ−1)) + 1/T,  A = λ·(λ/(λ−1))^(λ−1)
//
// It diverges at r = 0; callers never evaluate it there.
type PseudoHardSphere struct {
	Exponent    float64
	Temperature float64
	amplitude   float64
}

func NewPseudoHardSphere(exponent, temperature float64) (*PseudoHardSphere, error) {
	if exponent <= 1 {
		return nil, fmt.Errorf("exponent must be greater than 1, got %f", exponent)
	}
	if temperature <= 0 {
		return nil, fmt.Errorf("temperature must be positive, got %f", temperature)
	}
	return &PseudoHardSphere{
		Exponent:    exponent,
		Temperature: temperature,
		amplitude:   exponent * math.Pow(exponent/(exponent-1), exponent-1),
	}, nil
}

func (p *PseudoHardSphere) Name() string { return "phs" }

func (p *PseudoHardSphere) Radial(r float64) float64 {
	return (p.amplitude/p.Temperature)*(math.Pow(r, -p.Exponent)-math.Pow(r, -(p.Exponent-1))) + 1/p.Temperature
}

// Amplitude returns A = λ·(λ/(λ−1))^(λ−1).
func (p *PseudoHardSphere) Amplitude() float64 { return p.amplitude }
