package optim

import (
	"github.com/san-kum/liquid/internal/analysis"
	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/experiment"
)

// CorrelationTime thermalizes each configuration and scores it by the
// integrated autocorrelation time of the energy after the burn-in fraction.
func CorrelationTime(registry *experiment.Registry, burnIn float64) Objective {
	return func(cfg *config.Config) (float64, error) {
		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return 0, err
		}

		energies := make([]float64, 0, exp.Thermalizer().Cycles())
		exp.AddObserver(dynamo.ObserverFunc(func(r dynamo.Record) {
			energies = append(energies, r.Energy)
		}))
		exp.Run()

		s := analysis.Summarize(energies, burnIn)
		return analysis.IntegratedTime(energies[s.Start:]), nil
	}
}
