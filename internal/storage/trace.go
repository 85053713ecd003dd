package storage

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/liquid/internal/dynamo"
)

var traceHeader = []string{"step", "energy", "drmax", "ratio"}

// TraceWriter streams progress records as CSV rows. It is a dynamo.Observer;
// the first write error is kept and returned by Close.
type TraceWriter struct {
	path string
	f    *os.File
	buf  *bufio.Writer
	w    *csv.Writer
	err  error
}

func CreateTrace(path string) (*TraceWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &dynamo.OutputError{Path: path, Wrapped: err}
	}
	buf := bufio.NewWriter(f)
	t := &TraceWriter{path: path, f: f, buf: buf, w: csv.NewWriter(buf)}
	t.err = t.w.Write(traceHeader)
	return t, nil
}

func (t *TraceWriter) OnStep(r dynamo.Record) {
	if t.err != nil {
		return
	}
	t.err = t.w.Write([]string{
		strconv.Itoa(r.Step),
		strconv.FormatFloat(r.Energy, 'g', -1, 64),
		strconv.FormatFloat(r.MaxDisplacement, 'g', -1, 64),
		strconv.FormatFloat(r.Ratio, 'g', -1, 64),
	})
}

func (t *TraceWriter) Close() error {
	t.w.Flush()
	if t.err == nil {
		t.err = t.w.Error()
	}
	if t.err == nil {
		t.err = t.buf.Flush()
	}
	if cerr := t.f.Close(); t.err == nil {
		t.err = cerr
	}
	if t.err != nil {
		return &dynamo.OutputError{Path: t.path, Wrapped: t.err}
	}
	return nil
}

func ReadTrace(r io.Reader) ([]dynamo.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(traceHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []dynamo.Record{}, nil
	}

	records := make([]dynamo.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		step, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		var vals [3]float64
		ok := true
		for i := range vals {
			if vals[i], err = strconv.ParseFloat(row[i+1], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		records = append(records, dynamo.Record{Step: step, Energy: vals[0], MaxDisplacement: vals[1], Ratio: vals[2]})
	}
	return records, nil
}

func ReadTraceFile(path string) ([]dynamo.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTrace(f)
}
