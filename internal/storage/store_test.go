package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/liquid/internal/config"
	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/experiment"
)

func runSmoke(t *testing.T, st *Store) (*Run, *experiment.Result, []dynamo.Record) {
	t.Helper()

	cfg := config.GetPreset("smoke")
	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	run, err := st.Create("smoke")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	trace, err := run.OpenTrace()
	if err != nil {
		t.Fatalf("open trace failed: %v", err)
	}

	var records []dynamo.Record
	exp.AddObserver(trace)
	exp.AddObserver(dynamo.ObserverFunc(func(r dynamo.Record) { records = append(records, r) }))

	res := exp.Run()
	if err := trace.Close(); err != nil {
		t.Fatalf("close trace failed: %v", err)
	}
	if err := run.Finish(Describe(cfg, res), res.System.Config); err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	return run, res, records
}

func TestStoreRunLifecycle(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	run, res, records := runSmoke(t, st)

	meta, err := st.Load(run.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != run.ID {
		t.Errorf("expected id %s, got %s", run.ID, meta.ID)
	}
	if meta.Seed != 42 || meta.Particles != 8 || meta.Cycles != 26 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Final != res.Context {
		t.Errorf("final context = %+v, want %+v", meta.Final, res.Context)
	}

	trace, err := st.LoadTrace(run.ID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(trace) != len(records) {
		t.Fatalf("expected %d trace rows, got %d", len(records), len(trace))
	}
	for i := range records {
		if trace[i] != records[i] {
			t.Errorf("row %d = %+v, want %+v", i, trace[i], records[i])
		}
	}

	snap, err := st.LoadSnapshot(run.ID)
	if err != nil {
		t.Fatalf("load snapshot failed: %v", err)
	}
	if len(snap) != 8 {
		t.Errorf("expected 8 positions, got %d", len(snap))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	st.Init()

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	runSmoke(t, st)
	runSmoke(t, st)
	if _, err := st.Create("unfinished"); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 finished runs, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	st.Init()
	run, _, _ := runSmoke(t, st)

	for _, name := range []string{"metadata.json", "trace.csv", "snapshot.dat"} {
		if _, err := os.Stat(filepath.Join(dir, run.ID, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
}

func TestStoreInit_OutputFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	os.WriteFile(blocker, []byte("x"), 0644)

	st := New(filepath.Join(blocker, "runs"))
	if err := st.Init(); !errors.Is(err, dynamo.ErrOutput) {
		t.Errorf("expected ErrOutput, got %v", err)
	}
}

func TestExportRun(t *testing.T) {
	st := New(t.TempDir())
	st.Init()
	run, _, _ := runSmoke(t, st)

	var buf bytes.Buffer
	if err := st.ExportRun(&buf, run.ID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run.ID != run.ID || len(data.Trace) != 26 || len(data.Positions) != 8 {
		t.Errorf("unexpected export: id=%s trace=%d positions=%d", data.Run.ID, len(data.Trace), len(data.Positions))
	}
	if !strings.Contains(buf.String(), `"drmax"`) {
		t.Error("expected drmax field in export")
	}
}
