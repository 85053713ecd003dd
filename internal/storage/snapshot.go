package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/liquid/internal/dynamo"
)

// WriteSnapshot writes one line per particle: x, y and z separated by tabs.
func WriteSnapshot(w io.Writer, config dynamo.Configuration) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, p := range config {
		row := []string{
			strconv.FormatFloat(p[0], 'f', 6, 64),
			strconv.FormatFloat(p[1], 'f', 6, 64),
			strconv.FormatFloat(p[2], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveSnapshot writes the configuration to path. Failures wrap dynamo.ErrOutput.
func SaveSnapshot(path string, config dynamo.Configuration) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &dynamo.OutputError{Path: path, Wrapped: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &dynamo.OutputError{Path: path, Wrapped: cerr}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := WriteSnapshot(bw, config); err != nil {
		return &dynamo.OutputError{Path: path, Wrapped: err}
	}
	if err := bw.Flush(); err != nil {
		return &dynamo.OutputError{Path: path, Wrapped: err}
	}
	return nil
}

func ReadSnapshot(r io.Reader) (dynamo.Configuration, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	config := make(dynamo.Configuration, len(records))
	for i, rec := range records {
		for a := 0; a < 3; a++ {
			v, err := strconv.ParseFloat(rec[a], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			config[i][a] = v
		}
	}
	return config, nil
}

func LoadSnapshot(path string) (dynamo.Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f)
}
