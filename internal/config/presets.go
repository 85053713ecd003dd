package config

import "sort"

var Presets = map[string]*Config{
	// 27 particles at fill fraction 0.35.
	"reference": withDefaults(func(c *Config) {
		c.LatticeSize = 3
		c.FillFraction = 0.35
	}),
	"smoke": withDefaults(func(c *Config) {
		c.LatticeSize = 2
		c.FillFraction = 0.35
		c.StepsPerParticle = 1
		c.TargetRatio = 0.3
		c.Seed = 42
	}),
	"dilute": withDefaults(func(c *Config) {
		c.LatticeSize = 5
		c.FillFraction = 0.2
		c.StepsPerParticle = 200
	}),
	"dense": withDefaults(func(c *Config) {
		c.LatticeSize = 6
		c.FillFraction = 0.45
		c.StepsPerParticle = 500
		c.TargetRatio = 0.35
	}),
}

// PresetInfo is a one-line description of each preset.
var PresetInfo = map[string]string{
	"reference": "27 particles at fill fraction 0.35",
	"smoke":     "8 particles, 26 cycles, fixed seed",
	"dilute":    "125 particles at fill fraction 0.2",
	"dense":     "216 particles at fill fraction 0.45",
}

func withDefaults(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
