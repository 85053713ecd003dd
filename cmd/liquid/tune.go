package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/liquid/internal/experiment"
	"github.com/san-kum/liquid/internal/optim"
	"github.com/san-kum/liquid/internal/viz"
)

// parseGrid reads entries of the form name=v1,v2,...
func parseGrid(entries []string) ([]string, [][]float64, error) {
	var names []string
	var ranges [][]float64
	for _, e := range entries {
		name, list, ok := strings.Cut(e, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("grid entry %q: want name=v1,v2,...", e)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid entry %q: %w", e, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func tuneRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}
	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	fmt.Printf("searching %d configurations for the shortest energy correlation time...\n", g.Size())
	best, points, err := g.Search(cmd.Context(), cfg, optim.CorrelationTime(experiment.NewRegistry(), burnIn))
	if err != nil {
		return err
	}

	cols := append([]string(nil), names...)
	sort.Strings(cols)
	w := newTable(os.Stdout)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(cols, "\t"))+"\tTAU")
	for _, p := range points {
		for _, name := range cols {
			fmt.Fprintf(w, "%g\t", p.Params[name])
		}
		fmt.Fprintf(w, "%.3f\n", p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	var parts []string
	for _, name := range cols {
		parts = append(parts, fmt.Sprintf("%s=%g", name, best.Params[name]))
	}
	fmt.Println()
	fmt.Println(viz.Metric("best", "%s (tau %.3f)", strings.Join(parts, " "), best.Value))
	return nil
}
