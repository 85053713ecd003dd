// Package automation runs batches of thermalizations described in YAML:
// scripted scenarios, one-parameter sweeps and seed replicas.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/experiment"
)

// Scenario is a named list of runs, each a preset or the defaults plus overrides.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
	Sweep       *Sweep         `yaml:"sweep"`
}

type ScenarioStep struct {
	Name             string   `yaml:"name"`
	Preset           string   `yaml:"preset"`
	LatticeSize      *int     `yaml:"lattice_size"`
	FillFraction     *float64 `yaml:"fill_fraction"`
	StepsPerParticle *int     `yaml:"steps_per_particle"`
	TargetRatio      *float64 `yaml:"target_ratio"`
	Seed             *int64   `yaml:"seed"`
	Rewrap           string   `yaml:"rewrap"`
	Distance         string   `yaml:"distance"`
	Replicas         int      `yaml:"replicas"`
}

// Sweep varies one parameter linearly between Min and Max.
type Sweep struct {
	Preset string  `yaml:"preset"`
	Param  string  `yaml:"param"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Points int     `yaml:"points"`
}

// Job is one fully resolved run of a batch.
type Job struct {
	Name   string
	Config *config.Config
}

type Outcome struct {
	Job     Job
	Result  *experiment.Result
	Stored  string
	Elapsed float64
}

// Sink persists runs. Begin is called before a job runs and may return an
// observer for its records; Store receives the finished result and returns a
// reference such as a run id.
type Sink interface {
	Begin(job Job) (dynamo.Observer, error)
	Store(job Job, res *experiment.Result) (string, error)
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 && scenario.Sweep == nil {
		return nil, fmt.Errorf("scenario %s has no steps and no sweep", path)
	}
	return &scenario, nil
}

// Jobs expands steps, replicas and the sweep into concrete configurations.
func (s *Scenario) Jobs() ([]Job, error) {
	var jobs []Job
	for i, step := range s.Steps {
		cfg, err := step.resolve()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		jobs = append(jobs, Replicas(Job{Name: name, Config: cfg}, step.Replicas)...)
	}
	if s.Sweep != nil {
		swept, err := s.Sweep.Jobs()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, swept...)
	}
	return jobs, nil
}

func base(preset string) (*config.Config, error) {
	if preset == "" {
		return config.DefaultConfig(), nil
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("%w: preset %q", dynamo.ErrUnknownMode, preset)
	}
	return cfg, nil
}

func (st ScenarioStep) resolve() (*config.Config, error) {
	cfg, err := base(st.Preset)
	if err != nil {
		return nil, err
	}
	if st.LatticeSize != nil {
		cfg.LatticeSize = *st.LatticeSize
	}
	if st.FillFraction != nil {
		cfg.FillFraction = *st.FillFraction
	}
	if st.StepsPerParticle != nil {
		cfg.StepsPerParticle = *st.StepsPerParticle
	}
	if st.TargetRatio != nil {
		cfg.TargetRatio = *st.TargetRatio
	}
	if st.Seed != nil {
		cfg.Seed = *st.Seed
	}
	if st.Rewrap != "" {
		cfg.Rewrap = st.Rewrap
	}
	if st.Distance != "" {
		cfg.Distance = st.Distance
	}
	return cfg, cfg.Validate()
}

// Replicas repeats job n times with consecutive seeds starting at the job's seed.
// n <= 1 returns the job unchanged.
func Replicas(job Job, n int) []Job {
	if n <= 1 {
		return []Job{job}
	}
	jobs := make([]Job, n)
	for i := range n {
		cfg := *job.Config
		cfg.Seed = job.Config.Seed + int64(i)
		jobs[i] = Job{Name: job.Name + "_r" + strconv.Itoa(i), Config: &cfg}
	}
	return jobs
}

func (sw *Sweep) Jobs() ([]Job, error) {
	if sw.Points < 2 {
		return nil, dynamo.Bounds("sweep.points", sw.Points, ">= 2")
	}
	step := (sw.Max - sw.Min) / float64(sw.Points-1)
	jobs := make([]Job, 0, sw.Points)
	for i := range sw.Points {
		cfg, err := base(sw.Preset)
		if err != nil {
			return nil, err
		}
		v := sw.Min + float64(i)*step
		if err := cfg.SetParam(sw.Param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("sweep point %d: %w", i+1, err)
		}
		jobs = append(jobs, Job{Name: fmt.Sprintf("%s=%g", sw.Param, v), Config: cfg})
	}
	return jobs, nil
}

// Run executes jobs in order. It stops between jobs when ctx is cancelled and
// returns the outcomes completed so far together with the first error.
func Run(ctx context.Context, jobs []Job, registry *experiment.Registry, sink Sink, log *slog.Logger) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		log.Info("running job", "index", i+1, "of", len(jobs), "name", job.Name)

		exp, err := experiment.New(job.Config, registry)
		if err != nil {
			return outcomes, fmt.Errorf("job %s: %w", job.Name, err)
		}
		if sink != nil {
			obs, err := sink.Begin(job)
			if err != nil {
				return outcomes, fmt.Errorf("job %s: %w", job.Name, err)
			}
			if obs != nil {
				exp.AddObserver(obs)
			}
		}
		res := exp.Run()

		out := Outcome{Job: job, Result: res, Elapsed: res.Elapsed.Seconds()}
		if sink != nil {
			ref, err := sink.Store(job, res)
			if err != nil {
				return outcomes, fmt.Errorf("job %s: %w", job.Name, err)
			}
			out.Stored = ref
		}
		log.Info("job complete", "name", job.Name,
			"energy", res.Context.Energy, "ratio", res.Context.Ratio(), "stored", out.Stored)
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}
