package physics

import (
	"math"
	"testing"
)

func TestPseudoHardSphere_UnitSeparation(t *testing.T) {
	p, err := NewPseudoHardSphere(DefaultExponent, DefaultTemperature)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Radial(1.0); got != 1/DefaultTemperature {
		t.Errorf("v(1) = %v, want %v", got, 1/DefaultTemperature)
	}
	if got := p.Radial(1.0); math.Abs(got-0.6785) > 1e-4 {
		t.Errorf("v(1) = %v, want ≈ 0.6785", got)
	}
}

func TestPseudoHardSphere_VanishesAtMinimum(t *testing.T) {
	p, _ := NewPseudoHardSphere(DefaultExponent, DefaultTemperature)
	rmin := DefaultExponent / (DefaultExponent - 1)
	if got := p.Radial(rmin); math.Abs(got) > 1e-9 {
		t.Errorf("v(rmin) = %v, want 0", got)
	}
}

func TestPseudoHardSphere_Repulsive(t *testing.T) {
	p, _ := NewPseudoHardSphere(DefaultExponent, DefaultTemperature)
	prev := math.Inf(1)
	for r := 0.9; r < 1.02; r += 0.01 {
		v := p.Radial(r)
		if v >= prev {
			t.Fatalf("potential not decreasing at r=%v", r)
		}
		prev = v
	}
	if p.Radial(0.8) < 1e3 {
		t.Errorf("expected steep core, got v(0.8) = %v", p.Radial(0.8))
	}
}

func TestPseudoHardSphere_Amplitude(t *testing.T) {
	p, _ := NewPseudoHardSphere(50, 1.4737)
	want := 50 * math.Pow(50.0/49.0, 49)
	if math.Abs(p.Amplitude()-want) > 1e-9 {
		t.Errorf("amplitude = %v, want %v", p.Amplitude(), want)
	}
}

func TestNewPseudoHardSphere_Invalid(t *testing.T) {
	if _, err := NewPseudoHardSphere(1, 1); err == nil {
		t.Error("expected error for exponent 1")
	}
	if _, err := NewPseudoHardSphere(50, 0); err == nil {
		t.Error("expected error for zero temperature")
	}
}
