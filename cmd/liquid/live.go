package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/experiment"
	"github.com/san-kum/liquid/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	var m tea.Model
	if preset == "" && configFile == "" && !anySystemFlagChanged(cmd) {
		m = viz.NewPicker(config.ListPresets(), config.PresetInfo, func(name string) (viz.Model, error) {
			cfg := config.GetPreset(name)
			if cfg.Seed == 0 {
				cfg.Seed = seedFromClock()
			}
			return liveModel(cfg, name)
		})
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		title := preset
		if title == "" {
			title = fmt.Sprintf("n=%d fill=%.2f", cfg.Particles(), cfg.FillFraction)
		}
		lm, err := liveModel(cfg, title)
		if err != nil {
			return err
		}
		m = lm
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

func liveModel(cfg *config.Config, title string) (viz.Model, error) {
	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return viz.Model{}, err
	}
	return viz.NewModel(exp.Thermalizer(), title, batch), nil
}

func anySystemFlagChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"lattice", "fill", "steps", "target", "drmax", "seed", "rewrap", "distance", "potential"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
