package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
	snapshotFile = "snapshot.dat"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return &dynamo.OutputError{Path: s.baseDir, Wrapped: err}
	}
	return nil
}

func (s *Store) BaseDir() string { return s.baseDir }

type RunMetadata struct {
	ID               string            `json:"id"`
	Timestamp        time.Time         `json:"timestamp"`
	Seed             int64             `json:"seed"`
	LatticeSize      int               `json:"lattice_size"`
	Particles        int               `json:"particles"`
	FillFraction     float64           `json:"fill_fraction"`
	Density          float64           `json:"density"`
	BoxLength        float64           `json:"box_length"`
	StepsPerParticle int               `json:"steps_per_particle"`
	TargetRatio      float64           `json:"target_ratio"`
	Potential        string            `json:"potential"`
	Exponent         float64           `json:"exponent"`
	Temperature      float64           `json:"temperature"`
	Rewrap           string            `json:"rewrap"`
	Distance         string            `json:"distance"`
	Cycles           int               `json:"cycles"`
	InitialEnergy    float64           `json:"initial_energy"`
	Final            dynamo.RunContext `json:"final"`
	ElapsedSeconds   float64           `json:"elapsed_seconds"`
	Upload           string            `json:"upload,omitempty"`
}

// Describe collects the metadata of a finished run.
func Describe(cfg *config.Config, res *experiment.Result) RunMetadata {
	return RunMetadata{
		Timestamp:        time.Now(),
		Seed:             cfg.Seed,
		LatticeSize:      cfg.LatticeSize,
		Particles:        res.System.N,
		FillFraction:     res.System.FillFraction,
		Density:          res.System.Density,
		BoxLength:        res.System.BoxLength,
		StepsPerParticle: cfg.StepsPerParticle,
		TargetRatio:      cfg.TargetRatio,
		Potential:        cfg.Potential.Name,
		Exponent:         cfg.Potential.Exponent,
		Temperature:      cfg.Potential.Temperature,
		Rewrap:           cfg.Rewrap,
		Distance:         cfg.Distance,
		Cycles:           res.Cycles,
		InitialEnergy:    res.InitialEnergy,
		Final:            res.Context,
		ElapsedSeconds:   res.Elapsed.Seconds(),
	}
}

// Run is a run directory being written.
type Run struct {
	ID  string
	Dir string
}

// Create makes a fresh run directory named after prefix.
func (s *Store) Create(prefix string) (*Run, error) {
	id := fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &dynamo.OutputError{Path: dir, Wrapped: err}
	}
	return &Run{ID: id, Dir: dir}, nil
}

// OpenTrace starts the per-step trace of the run.
func (r *Run) OpenTrace() (*TraceWriter, error) {
	return CreateTrace(filepath.Join(r.Dir, traceFile))
}

func (r *Run) SnapshotPath() string { return filepath.Join(r.Dir, snapshotFile) }

// Finish writes the metadata and final snapshot of the run.
func (r *Run) Finish(meta RunMetadata, final dynamo.Configuration) error {
	meta.ID = r.ID
	if err := SaveSnapshot(r.SnapshotPath(), final); err != nil {
		return err
	}
	return writeJSON(filepath.Join(r.Dir, metadataFile), meta)
}

// Rewrite replaces the metadata of a finished run.
func (r *Run) Rewrite(meta RunMetadata) error {
	meta.ID = r.ID
	return writeJSON(filepath.Join(r.Dir, metadataFile), meta)
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &dynamo.OutputError{Path: path, Wrapped: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &dynamo.OutputError{Path: path, Wrapped: cerr}
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return &dynamo.OutputError{Path: path, Wrapped: err}
	}
	return nil
}

// List returns the metadata of every finished run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]dynamo.Record, error) {
	return ReadTraceFile(filepath.Join(s.baseDir, runID, traceFile))
}

func (s *Store) LoadSnapshot(runID string) (dynamo.Configuration, error) {
	return LoadSnapshot(s.SnapshotPath(runID))
}

func (s *Store) SnapshotPath(runID string) string {
	return filepath.Join(s.baseDir, runID, snapshotFile)
}
