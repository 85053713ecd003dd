package automation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/experiment"
)

const scenarioYAML = `
name: smoke-batch
description: two smoke runs and a fill sweep
steps:
  - name: base
    preset: smoke
  - preset: smoke
    fill_fraction: 0.3
    replicas: 3
sweep:
  preset: smoke
  param: fill_fraction
  min: 0.2
  max: 0.4
  points: 3
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type memSink struct {
	names []string
	steps int
}

func (m *memSink) Begin(job Job) (dynamo.Observer, error) {
	return dynamo.ObserverFunc(func(dynamo.Record) { m.steps++ }), nil
}

func (m *memSink) Store(job Job, res *experiment.Result) (string, error) {
	m.names = append(m.names, job.Name)
	return "ref-" + job.Name, nil
}

func TestScenarioJobs(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	jobs, err := sc.Jobs()
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 7 {
		t.Fatalf("jobs = %d, want 7", len(jobs))
	}

	if jobs[0].Name != "base" || jobs[0].Config.LatticeSize != 2 {
		t.Errorf("first job = %+v", jobs[0])
	}
	for i, j := range jobs[1:4] {
		if j.Config.FillFraction != 0.3 || j.Config.Seed != 42+int64(i) {
			t.Errorf("replica %d: fill=%v seed=%d", i, j.Config.FillFraction, j.Config.Seed)
		}
	}
	if jobs[1].Name != "step2_r0" {
		t.Errorf("replica name = %s", jobs[1].Name)
	}
	wantFill := []float64{0.2, 0.3, 0.4}
	for i, j := range jobs[4:] {
		if diff := j.Config.FillFraction - wantFill[i]; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("sweep %d fill = %v", i, j.Config.FillFraction)
		}
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for empty scenario")
	}
	if _, err := LoadScenario(writeScenario(t, "steps: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestJobsRejectInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown preset", "steps:\n  - preset: nope\n", dynamo.ErrUnknownMode},
		{"bad fill", "steps:\n  - fill_fraction: 1.5\n", dynamo.ErrParameterBounds},
		{"bad param", "sweep: {param: temperature, min: 1, max: 2, points: 2}\n", dynamo.ErrUnknownMode},
		{"few points", "sweep: {param: fill_fraction, min: 0.1, max: 0.2, points: 1}\n", dynamo.ErrParameterBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := LoadScenario(writeScenario(t, tt.body))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := sc.Jobs(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunStoresEveryJob(t *testing.T) {
	sc, _ := LoadScenario(writeScenario(t, scenarioYAML))
	jobs, _ := sc.Jobs()
	sink := &memSink{}

	outcomes, err := Run(context.Background(), jobs, experiment.NewRegistry(), sink, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != len(jobs) || len(sink.names) != len(jobs) {
		t.Fatalf("outcomes=%d stored=%d, want %d", len(outcomes), len(sink.names), len(jobs))
	}
	if sink.steps != 26*len(jobs) {
		t.Errorf("observed %d steps, want %d", sink.steps, 26*len(jobs))
	}
	if outcomes[0].Stored != "ref-base" {
		t.Errorf("stored = %s", outcomes[0].Stored)
	}
	if outcomes[0].Result.Cycles != 26 {
		t.Errorf("cycles = %d, want 26", outcomes[0].Result.Cycles)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	sc, _ := LoadScenario(writeScenario(t, scenarioYAML))
	jobs, _ := sc.Jobs()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := Run(ctx, jobs, experiment.NewRegistry(), nil, quiet())
	if !errors.Is(err, context.Canceled) || len(outcomes) != 0 {
		t.Errorf("outcomes=%d err=%v", len(outcomes), err)
	}
}
