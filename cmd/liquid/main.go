package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/liquid/internal/config"
)

var (
	dataDir    string
	logLevel   string
	catalogDSN string

	// system and run parameters
	lattice     int
	fill        float64
	steps       int
	target      float64
	displace    float64
	seed        int64
	rewrap      string
	distance    string
	potential   string
	reportEvery int

	configFile string
	preset     string

	// outputs
	uploadDest  string
	metricsFile string

	// analysis
	bins     int
	burnIn   float64
	plane    string
	outDir   string
	batch    int
	fromDirs bool
	grid     []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "liquid",
		Short:         "metropolis monte carlo liquid simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".liquid", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&catalogDSN, "catalog", "", "run index: sqlite path or postgres:// url (default <data>/runs.db)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "thermalize a system and store the final configuration",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSystemFlags(runCmd)
	runCmd.Flags().IntVar(&reportEvery, "report-every", config.DefaultReportEvery, "log progress every n cycles")
	runCmd.Flags().StringVar(&uploadDest, "upload", "", "copy the snapshot to a directory or s3://bucket/prefix")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics to this textfile")

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "print the initial lattice configuration",
		Args:  cobra.NoArgs,
		RunE:  describeSystem,
	}
	addSystemFlags(describeCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	listCmd.Flags().BoolVar(&fromDirs, "dirs", false, "scan run directories instead of the catalog")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energy and step size trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().Float64Var(&burnIn, "burn-in", 0.5, "fraction of the trace excluded from statistics")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata, trace and snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	rdfCmd := &cobra.Command{
		Use:   "rdf [run_id]",
		Short: "radial distribution function of the final snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  radialDistribution,
	}
	rdfCmd.Flags().IntVar(&bins, "bins", 50, "histogram bins up to half the box length")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render the snapshot and energy trace as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&plane, "plane", "xy", "projection plane (xy, xz, yz)")
	svgCmd.Flags().StringVar(&outDir, "out", "", "output directory (default: the run directory)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "thermalize with a live terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSystemFlags(liveCmd)
	liveCmd.Flags().IntVar(&batch, "batch", 16, "cycles per frame")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "run every job of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&uploadDest, "upload", "", "copy snapshots to a directory or s3://bucket/prefix")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search for the shortest energy correlation time",
		Args:  cobra.NoArgs,
		RunE:  tuneRun,
	}
	addSystemFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", []string{"target_ratio=0.2,0.3,0.4,0.5"}, "parameter values as name=v1,v2,... (repeatable)")
	tuneCmd.Flags().Float64Var(&burnIn, "burn-in", 0.5, "fraction of each trace discarded before scoring")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, describeCmd, listCmd, plotCmd, exportJSONCmd, rdfCmd, svgCmd, liveCmd, sweepCmd, tuneCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "liquid:", err)
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().IntVar(&lattice, "lattice", def.LatticeSize, "particles per lattice side (n = lattice³)")
	cmd.Flags().Float64Var(&fill, "fill", def.FillFraction, "packing fraction in (0, 1)")
	cmd.Flags().IntVar(&steps, "steps", def.StepsPerParticle, "trial moves per particle")
	cmd.Flags().Float64Var(&target, "target", def.TargetRatio, "target acceptance ratio")
	cmd.Flags().Float64Var(&displace, "drmax", def.InitialDisplacement, "initial maximum displacement")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 derives one from the clock)")
	cmd.Flags().StringVar(&rewrap, "rewrap", def.Rewrap, "rewrap after each move: all or moved")
	cmd.Flags().StringVar(&distance, "distance", def.Distance, "pair distance: direct or minimum-image")
	cmd.Flags().StringVar(&potential, "potential", def.Potential.Name, "pair potential")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}
