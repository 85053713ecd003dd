package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/liquid/internal/dynamo"
)

type TraceRow struct {
	Step            int     `json:"step"`
	Energy          float64 `json:"energy"`
	MaxDisplacement float64 `json:"drmax"`
	Ratio           float64 `json:"ratio"`
}

type ExportData struct {
	Run       RunMetadata  `json:"run"`
	Trace     []TraceRow   `json:"trace"`
	Positions [][3]float64 `json:"positions"`
}

// ExportJSON writes a run's metadata, trace and final positions as one JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, trace []dynamo.Record, final dynamo.Configuration) error {
	data := ExportData{
		Run:       *meta,
		Trace:     make([]TraceRow, len(trace)),
		Positions: make([][3]float64, len(final)),
	}
	for i, r := range trace {
		data.Trace[i] = TraceRow{Step: r.Step, Energy: r.Energy, MaxDisplacement: r.MaxDisplacement, Ratio: r.Ratio}
	}
	for i, p := range final {
		data.Positions[i] = p
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportRun loads run runID from the store and exports it.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	trace, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}
	final, err := s.LoadSnapshot(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, trace, final)
}
