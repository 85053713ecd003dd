package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/liquid/internal/dynamo"
)

// Exporter mirrors run progress into prometheus collectors so a node_exporter
// textfile collector can pick up batch runs.
type Exporter struct {
	registry  *prometheus.Registry
	steps     prometheus.Counter
	accepted  prometheus.Gauge
	energy    prometheus.Gauge
	drmax     prometheus.Gauge
	ratio     prometheus.Gauge
	summaries *prometheus.GaugeVec
	set       Set
}

func NewExporter(runID string, set Set) *Exporter {
	labels := prometheus.Labels{"run": runID}
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "liquid_steps_total", Help: "Thermalization cycles executed.", ConstLabels: labels,
		}),
		accepted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "liquid_accepted_moves", Help: "Accepted trial moves estimated from the ratio.", ConstLabels: labels,
		}),
		energy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "liquid_energy", Help: "Current total potential energy.", ConstLabels: labels,
		}),
		drmax: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "liquid_max_displacement", Help: "Current maximum trial displacement.", ConstLabels: labels,
		}),
		ratio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "liquid_acceptance_ratio", Help: "Cumulative acceptance ratio.", ConstLabels: labels,
		}),
		summaries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "liquid_metric", Help: "Run summary metrics.", ConstLabels: labels,
		}, []string{"name"}),
		set: set,
	}
	e.registry.MustRegister(e.steps, e.accepted, e.energy, e.drmax, e.ratio, e.summaries)
	return e
}

func (e *Exporter) OnStep(r dynamo.Record) {
	e.steps.Inc()
	e.energy.Set(r.Energy)
	e.drmax.Set(r.MaxDisplacement)
	e.ratio.Set(r.Ratio)
	e.accepted.Set(r.Ratio * float64(r.Step))
	e.set.OnStep(r)
}

func (e *Exporter) Registry() *prometheus.Registry { return e.registry }

// WriteTextfile publishes the summaries and writes the registry in text exposition format.
func (e *Exporter) WriteTextfile(path string) error {
	for name, v := range e.set.Values() {
		e.summaries.WithLabelValues(name).Set(v)
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return &dynamo.OutputError{Path: path, Wrapped: err}
	}
	return nil
}
