package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/liquid/internal/dynamo"
)

// PlotSeries renders values as an ascii line chart.
func PlotSeries(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotTrace charts energy and maximum displacement of a run, one above the other.
func PlotTrace(trace []dynamo.Record, width int) string {
	if len(trace) == 0 {
		return ""
	}
	energy := make([]float64, len(trace))
	drmax := make([]float64, len(trace))
	for i, r := range trace {
		energy[i] = r.Energy
		drmax[i] = r.MaxDisplacement
	}
	return PlotSeries(energy, "energy", width, 10) + "\n\n" +
		PlotSeries(drmax, "max displacement", width, 6)
}
