package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/liquid/internal/analysis"
	"github.com/san-kum/liquid/internal/catalog"
	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/experiment"
	"github.com/san-kum/liquid/internal/export"
	"github.com/san-kum/liquid/internal/physics"
	"github.com/san-kum/liquid/internal/storage"
	"github.com/san-kum/liquid/internal/viz"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func describeSystem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := physics.NewSystem(cfg.LatticeSize, cfg.FillFraction)
	if err != nil {
		return err
	}
	return sys.Describe(os.Stdout)
}

func listRuns(cmd *cobra.Command, args []string) error {
	if fromDirs {
		return listRunDirs()
	}

	cat, err := catalog.Open(cmd.Context(), catalogDSN, dataDir)
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := newTable(os.Stdout)
	fmt.Fprintln(w, "ID\tTIME\tN\tFILL\tSEED\tCYCLES\tENERGY\tRATIO\tUPLOAD")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%d\t%d\t%.4f\t%.4f\t%s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Particles,
			e.FillFraction,
			e.Seed,
			e.Cycles,
			e.Energy,
			e.Ratio,
			e.Upload,
		)
	}
	return w.Flush()
}

func listRunDirs() error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := newTable(os.Stdout)
	fmt.Fprintln(w, "ID\tTIME\tN\tFILL\tREWRAP\tDISTANCE\tENERGY\tRATIO")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%s\t%s\t%.4f\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.FillFraction,
			run.Rewrap,
			run.Distance,
			run.Final.Energy,
			run.Final.Ratio(),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d  fill: %.3f  cycles: %d\n\n", meta.Particles, meta.FillFraction, len(trace))
	fmt.Println(viz.PlotTrace(trace, 80))
	fmt.Println()

	energies := analysis.Energies(trace)
	s := analysis.Summarize(energies, burnIn)
	fmt.Println(viz.Metric("samples", "%d (from step %d)", s.Samples, s.Start+1))
	fmt.Println(viz.Metric("energy", "%.6f ± %.6f", s.Mean, s.StdDev))
	fmt.Println(viz.Metric("range", "[%.6f, %.6f]", s.Min, s.Max))
	fmt.Println(viz.Metric("tau", "%.2f", analysis.IntegratedTime(energies[s.Start:])))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportRun(os.Stdout, args[0])
}

// loadSystem rebuilds the geometry of a stored run around its final snapshot.
func loadSystem(st *storage.Store, runID string) (*storage.RunMetadata, *physics.System, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	snap, err := st.LoadSnapshot(runID)
	if err != nil {
		return nil, nil, err
	}
	sys, err := physics.NewSystem(meta.LatticeSize, meta.FillFraction)
	if err != nil {
		return nil, nil, err
	}
	if len(snap) != sys.N {
		return nil, nil, fmt.Errorf("snapshot of %s has %d particles, want %d", runID, len(snap), sys.N)
	}
	sys.Config = snap
	return meta, sys, nil
}

func radialDistribution(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, sys, err := loadSystem(st, args[0])
	if err != nil {
		return err
	}

	dist, err := experiment.NewRegistry().GetDistance(meta.Distance)
	if err != nil {
		return err
	}
	rdf, err := analysis.RadialDistribution(sys, dist, bins)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotSeries(rdf.G, fmt.Sprintf("g(r), r in [0, %.3f)", sys.BoxLength/2), 80, 12))
	fmt.Println()
	r, g := rdf.Peak()
	fmt.Println(viz.Metric("peak", "g(%.4f) = %.4f", r, g))

	w := newTable(os.Stdout)
	fmt.Fprintln(w, "R\tG")
	for k := range rdf.R {
		fmt.Fprintf(w, "%.4f\t%.4f\n", rdf.R[k], rdf.G[k])
	}
	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, sys, err := loadSystem(st, runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	dir := outDir
	if dir == "" {
		dir = filepath.Join(dataDir, runID)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &dynamo.OutputError{Path: dir, Wrapped: err}
	}

	snapshotSVG, err := export.SnapshotToSVG(sys.Config, meta.BoxLength, export.Plane(plane), 600)
	if err != nil {
		return err
	}
	files := map[string]string{
		"snapshot.svg": snapshotSVG,
		"energy.svg":   export.LineToSVG(export.TracePoints(trace), 800, 300, "#00ff88"),
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return &dynamo.OutputError{Path: path, Wrapped: err}
		}
		fmt.Println("wrote", path)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := newTable(os.Stdout)
	fmt.Fprintln(w, "NAME\tN\tFILL\tSTEPS\tTARGET\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%d\t%.2f\t%s\n",
			name, p.Particles(), p.FillFraction, p.StepsPerParticle, p.TargetRatio, config.PresetInfo[name])
	}
	return w.Flush()
}
