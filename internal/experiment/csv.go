package experiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// csvHeader is the column layout of exported batch results.
var csvHeader = []string{
	"run_id", "case_id", "category", "colors", "shuffle_len", "seed",
	"algorithm", "outcome", "moves",
	"expanded", "max_depth", "pruned", "best_bound",
	"elapsed_ms",
}

// WriteCSV exports one row per engine run.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, cr := range r.Results {
		for _, run := range cr.Runs {
			row := []string{
				r.RunID,
				cr.Case.ID,
				cr.Case.Category,
				fmt.Sprintf("%d", len(cr.Case.Colors)),
				fmt.Sprintf("%d", cr.Case.ShuffleLen),
				fmt.Sprintf("%d", cr.Case.Seed),
				run.Algorithm,
				run.Outcome.String(),
				fmt.Sprintf("%d", run.Moves),
				fmt.Sprintf("%d", run.Stats.Expanded),
				fmt.Sprintf("%d", run.Stats.MaxDepth),
				fmt.Sprintf("%d", run.Stats.Pruned),
				fmt.Sprintf("%d", run.Stats.BestBound),
				fmt.Sprintf("%.3f", float64(run.Elapsed.Microseconds())/1000),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the report to a file.
func SaveCSV(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
