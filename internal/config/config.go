package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/physics"
	"github.com/san-kum/liquid/internal/sim"
)

const (
	DefaultLatticeSize      = 3
	DefaultFillFraction     = 0.35
	DefaultStepsPerParticle = 100
	DefaultTargetRatio      = 0.3
	DefaultReportEvery      = 1000
	DefaultLogLevel         = "info"
)

type Config struct {
	LatticeSize         int             `yaml:"lattice_size"`
	FillFraction        float64         `yaml:"fill_fraction"`
	StepsPerParticle    int             `yaml:"steps_per_particle"`
	TargetRatio         float64         `yaml:"target_ratio"`
	InitialDisplacement float64         `yaml:"initial_displacement"`
	Seed                int64           `yaml:"seed"`
	Rewrap              string          `yaml:"rewrap"`
	Distance            string          `yaml:"distance"`
	Potential           PotentialConfig `yaml:"potential"`
	ReportEvery         int             `yaml:"report_every"`
	LogLevel            string          `yaml:"log_level"`
}

type PotentialConfig struct {
	Name        string  `yaml:"name"`
	Exponent    float64 `yaml:"exponent"`
	Temperature float64 `yaml:"temperature"`
}

func DefaultConfig() *Config {
	return &Config{
		LatticeSize:         DefaultLatticeSize,
		FillFraction:        DefaultFillFraction,
		StepsPerParticle:    DefaultStepsPerParticle,
		TargetRatio:         DefaultTargetRatio,
		InitialDisplacement: sim.DefaultMaxDisplacement,
		Rewrap:              string(sim.RewrapAll),
		Distance:            "direct",
		Potential: PotentialConfig{
			Name:        "phs",
			Exponent:    physics.DefaultExponent,
			Temperature: physics.DefaultTemperature,
		},
		ReportEvery: DefaultReportEvery,
		LogLevel:    DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto overlays the YAML file at path onto a copy of base, so keys
// missing from the file keep the base values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := *base
	cfg := &c
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks parameter ranges. Mode names are checked where they are resolved.
func (c *Config) Validate() error {
	switch {
	case c.LatticeSize <= 0:
		return dynamo.Bounds("lattice_size", c.LatticeSize, "> 0")
	case !(c.FillFraction > 0 && c.FillFraction < 1):
		return dynamo.Bounds("fill_fraction", c.FillFraction, "in (0, 1)")
	case c.StepsPerParticle <= 0:
		return dynamo.Bounds("steps_per_particle", c.StepsPerParticle, "> 0")
	case !(c.TargetRatio > 0 && c.TargetRatio < 1):
		return dynamo.Bounds("target_ratio", c.TargetRatio, "in (0, 1)")
	case !(c.InitialDisplacement > 0):
		return dynamo.Bounds("initial_displacement", c.InitialDisplacement, "> 0")
	case !(c.Potential.Exponent > 1):
		return dynamo.Bounds("potential.exponent", c.Potential.Exponent, "> 1")
	case !(c.Potential.Temperature > 0):
		return dynamo.Bounds("potential.temperature", c.Potential.Temperature, "> 0")
	case c.ReportEvery < 0:
		return dynamo.Bounds("report_every", c.ReportEvery, ">= 0")
	}
	return nil
}

// Particles is latticeSize³.
func (c *Config) Particles() int {
	return c.LatticeSize * c.LatticeSize * c.LatticeSize
}

// SimConfig returns the thermalization parameters.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		StepsPerParticle:    c.StepsPerParticle,
		TargetRatio:         c.TargetRatio,
		InitialDisplacement: c.InitialDisplacement,
		Rewrap:              sim.RewrapMode(c.Rewrap),
	}
}

// SetParam assigns a numeric parameter by its yaml key. Integer parameters
// are rounded.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "lattice_size":
		c.LatticeSize = int(math.Round(v))
	case "fill_fraction":
		c.FillFraction = v
	case "steps_per_particle":
		c.StepsPerParticle = int(math.Round(v))
	case "target_ratio":
		c.TargetRatio = v
	case "initial_displacement":
		c.InitialDisplacement = v
	case "potential.exponent":
		c.Potential.Exponent = v
	case "potential.temperature":
		c.Potential.Temperature = v
	default:
		return fmt.Errorf("%w: parameter %q", dynamo.ErrUnknownMode, name)
	}
	return nil
}
