package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/liquid/internal/automation"
	"github.com/san-kum/liquid/internal/blob"
	"github.com/san-kum/liquid/internal/catalog"
	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/experiment"
	"github.com/san-kum/liquid/internal/logging"
	"github.com/san-kum/liquid/internal/metrics"
	"github.com/san-kum/liquid/internal/storage"
	"github.com/san-kum/liquid/internal/viz"
)

// resolveConfig applies preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("lattice") {
		cfg.LatticeSize = lattice
	}
	if flags.Changed("fill") {
		cfg.FillFraction = fill
	}
	if flags.Changed("steps") {
		cfg.StepsPerParticle = steps
	}
	if flags.Changed("target") {
		cfg.TargetRatio = target
	}
	if flags.Changed("drmax") {
		cfg.InitialDisplacement = displace
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("rewrap") {
		cfg.Rewrap = rewrap
	}
	if flags.Changed("distance") {
		cfg.Distance = distance
	}
	if flags.Changed("potential") {
		cfg.Potential.Name = potential
	}
	if flags.Changed("report-every") {
		cfg.ReportEvery = reportEvery
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if cfg.Seed == 0 {
		cfg.Seed = seedFromClock()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func seedFromClock() int64 { return time.Now().UnixNano() }

// recorder stores runs in the data directory, indexes them in the catalog
// and optionally uploads their snapshots.
type recorder struct {
	ctx     context.Context
	log     *slog.Logger
	store   *storage.Store
	catalog catalog.Catalog
	upload  blob.Store
	prefix  string

	run   *storage.Run
	trace *storage.TraceWriter
}

func newRecorder(ctx context.Context, log *slog.Logger, uploadTo string) (*recorder, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}

	cat, err := catalog.Open(ctx, catalogDSN, dataDir)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	rec := &recorder{ctx: ctx, log: log, store: st, catalog: cat}

	if uploadTo != "" {
		bs, prefix, err := blob.Open(ctx, uploadTo)
		if err != nil {
			_ = cat.Close()
			return nil, fmt.Errorf("open upload destination: %w", err)
		}
		rec.upload, rec.prefix = bs, prefix
	}
	log.Debug("recorder ready", "data", dataDir, "catalog", cat.Driver(), "upload", uploadTo)
	return rec, nil
}

func (r *recorder) Close() error { return r.catalog.Close() }

func (r *recorder) Begin(job automation.Job) (dynamo.Observer, error) {
	n := job.Config.LatticeSize * job.Config.LatticeSize * job.Config.LatticeSize
	run, err := r.store.Create(fmt.Sprintf("n%d", n))
	if err != nil {
		return nil, err
	}
	trace, err := run.OpenTrace()
	if err != nil {
		return nil, err
	}
	r.run, r.trace = run, trace
	return trace, nil
}

func (r *recorder) RunID() string { return r.run.ID }

func (r *recorder) Store(job automation.Job, res *experiment.Result) (string, error) {
	run := r.run
	if err := r.trace.Close(); err != nil {
		return "", err
	}

	meta := storage.Describe(job.Config, res)
	if err := run.Finish(meta, res.System.Config); err != nil {
		return "", err
	}
	meta.ID = run.ID

	if r.upload != nil {
		url, err := blob.UploadFile(r.ctx, r.upload, r.prefix, run.ID+"/snapshot.dat", run.SnapshotPath())
		if err != nil {
			return "", err
		}
		meta.Upload = url
		if err := run.Rewrite(meta); err != nil {
			return "", err
		}
		r.log.Info("snapshot uploaded", "run", run.ID, "url", url)
	}

	if err := r.catalog.Record(r.ctx, catalog.Entry{
		ID:              meta.ID,
		Timestamp:       meta.Timestamp,
		Particles:       meta.Particles,
		FillFraction:    meta.FillFraction,
		Seed:            meta.Seed,
		Cycles:          meta.Cycles,
		Energy:          meta.Final.Energy,
		Ratio:           meta.Final.Ratio(),
		MaxDisplacement: meta.Final.MaxDisplacement,
		Dir:             run.Dir,
		Upload:          meta.Upload,
	}); err != nil {
		return "", fmt.Errorf("index run %s: %w", run.ID, err)
	}
	return run.ID, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.NewLogger(cfg.LogLevel, os.Stderr)

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}

	rec, err := newRecorder(cmd.Context(), log, uploadDest)
	if err != nil {
		return err
	}
	defer rec.Close()

	job := automation.Job{Name: "run", Config: cfg}
	trace, err := rec.Begin(job)
	if err != nil {
		return err
	}
	exp.AddObserver(trace)

	therm := exp.Thermalizer()
	exp.AddObserver(&logging.Progress{Logger: log, Every: cfg.ReportEvery, Total: therm.Cycles()})

	set := metrics.Default()
	var exporter *metrics.Exporter
	if metricsFile != "" {
		exporter = metrics.NewExporter(rec.RunID(), set)
		exp.AddObserver(exporter)
	} else {
		exp.AddObserver(set)
	}

	sys := therm.System()
	log.Info("thermalizing", "particles", sys.N, "box_length", sys.BoxLength, "cycles", therm.Cycles(), "seed", cfg.Seed)
	res := exp.Run()

	runID, err := rec.Store(job, res)
	if err != nil {
		return err
	}
	if exporter != nil {
		if err := exporter.WriteTextfile(metricsFile); err != nil {
			return err
		}
	}

	fmt.Println(viz.Title.Render("run " + runID))
	fmt.Println(viz.Metric("particles", "%d", res.System.N))
	fmt.Println(viz.Metric("box length", "%.6f", res.System.BoxLength))
	fmt.Println(viz.Metric("cycles", "%d", res.Cycles))
	fmt.Println(viz.Metric("energy", "%.6f -> %.6f", res.InitialEnergy, res.Context.Energy))
	fmt.Println(viz.Metric("accepted", "%d / %d (%.4f)", res.Context.Accepted, res.Context.Attempted, res.Context.Ratio()))
	fmt.Println(viz.Metric("drmax", "%.6f", res.Context.MaxDisplacement))
	fmt.Println(viz.Metric("elapsed", "%v", res.Elapsed.Round(time.Millisecond)))
	fmt.Println()
	for _, m := range set {
		fmt.Println(viz.Metric(m.Name(), "%.6f", m.Value()))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	log := logging.NewLogger(logLevel, os.Stderr)

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	jobs, err := scenario.Jobs()
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if job.Config.Seed == 0 {
			job.Config.Seed = seedFromClock()
		}
	}

	rec, err := newRecorder(cmd.Context(), log, uploadDest)
	if err != nil {
		return err
	}
	defer rec.Close()

	log.Info("sweep", "scenario", scenario.Name, "jobs", len(jobs))
	outcomes, err := automation.Run(cmd.Context(), jobs, experiment.NewRegistry(), rec, log)

	w := newTable(os.Stdout)
	fmt.Fprintln(w, "JOB\tRUN\tN\tFILL\tENERGY\tRATIO\tDRMAX")
	for _, o := range outcomes {
		ctx := o.Result.Context
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.4f\t%.4f\t%.5f\n",
			o.Job.Name, o.Stored, o.Result.System.N, o.Job.Config.FillFraction,
			ctx.Energy, ctx.Ratio(), ctx.MaxDisplacement)
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}
