package metrics

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/liquid/internal/dynamo"
)

func records() []dynamo.Record {
	return []dynamo.Record{
		{Step: 1, Energy: 10, MaxDisplacement: 0.105, Ratio: 1},
		{Step: 2, Energy: 8, MaxDisplacement: 0.11, Ratio: 0.5},
		{Step: 3, Energy: 12, MaxDisplacement: 0.1045, Ratio: 1.0 / 3},
	}
}

func TestMeanEnergy(t *testing.T) {
	m := NewMeanEnergy()
	for _, r := range records() {
		m.Observe(r)
	}
	if got := m.Value(); math.Abs(got-10) > 1e-12 {
		t.Errorf("mean = %f, want 10", got)
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()
	for _, r := range records() {
		m.Observe(r)
	}
	if got := m.Value(); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("drift = %f, want 0.2", got)
	}
}

func TestAcceptanceKeepsLatest(t *testing.T) {
	m := NewAcceptance()
	for _, r := range records() {
		m.Observe(r)
	}
	if got := m.Value(); math.Abs(got-1.0/3) > 1e-12 {
		t.Errorf("ratio = %f", got)
	}
}

func TestStepSizeBand(t *testing.T) {
	m := NewStepSize(0.1, 0.106)
	for _, r := range records() {
		m.Observe(r)
	}
	if got := m.Value(); math.Abs(got-2.0/3) > 1e-12 {
		t.Errorf("in band = %f, want 2/3", got)
	}
	if m.Last() != 0.1045 {
		t.Errorf("last = %f", m.Last())
	}
	m.Reset()
	if m.Value() != 0 || m.lo != 0.1 {
		t.Error("reset should clear samples but keep the band")
	}
}

func TestSetValues(t *testing.T) {
	set := Default()
	for _, r := range records() {
		set.OnStep(r)
	}
	vals := set.Values()
	for _, name := range []string{"mean_energy", "energy_drift", "acceptance_ratio", "step_size_in_band"} {
		if _, ok := vals[name]; !ok {
			t.Errorf("missing %s", name)
		}
	}
}

func TestExporterWritesTextfile(t *testing.T) {
	e := NewExporter("run_1", Default())
	for _, r := range records() {
		e.OnStep(r)
	}

	path := filepath.Join(t.TempDir(), "liquid.prom")
	if err := e.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		`liquid_steps_total{run="run_1"} 3`,
		`liquid_energy{run="run_1"} 12`,
		`liquid_metric{name="mean_energy",run="run_1"} 10`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q\n%s", want, text)
		}
	}
}

func TestExporterOutputFailure(t *testing.T) {
	e := NewExporter("run_1", Default())
	err := e.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	if !errors.Is(err, dynamo.ErrOutput) {
		t.Errorf("err = %v, want ErrOutput", err)
	}
}
