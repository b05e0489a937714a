// nutsort - heuristic solvers for the nut-sort color stacking puzzle.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	dbDir   string
	noDB    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nutsort",
	Short: "nutsort - solvers for the nut-sort color stacking puzzle",
	Long: `nutsort generates and solves nut-sort puzzles: pegs hold stacks of
colored nuts, only the top nut moves, and it may only land on an empty peg
or on a matching color with room. The goal is every peg empty or full with
a single color.

Two engines are available:
  backtracking      depth-first search with heuristic move ordering
  branch_and_bound  best-first search with lower-bound pruning`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbDir, "db", "", "database directory (defaults to the platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&noDB, "no-db", false, "skip the persistent database, keep everything in memory")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
