package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd prints the aggregate solve statistics
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate solve statistics from the database",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("stats need the database, drop --no-db")
	}
	defer store.Close()

	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	seen, err := store.SeenCount()
	if err != nil {
		return err
	}

	fmt.Printf("instances generated: %d\n", seen)
	fmt.Printf("solve runs:          %d (%.1f%% solved)\n", stats.TotalRuns, stats.SolveRate())
	if !stats.LastRun.IsZero() {
		fmt.Printf("last run:            %s\n", stats.LastRun.Format("2006-01-02 15:04:05"))
	}
	for name, alg := range stats.ByAlgorithm {
		meanMoves := 0.0
		if alg.Solved > 0 {
			meanMoves = float64(alg.TotalMoves) / float64(alg.Solved)
		}
		meanExp := 0.0
		if alg.Runs > 0 {
			meanExp = float64(alg.TotalExpanded) / float64(alg.Runs)
		}
		fmt.Printf("  %-18s runs %d, solved %d, mean moves %.1f, mean expanded %.0f\n",
			name, alg.Runs, alg.Solved, meanMoves, meanExp)
	}
	return nil
}
