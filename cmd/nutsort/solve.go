package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hailam/nutsort/internal/puzzle"
	"github.com/hailam/nutsort/internal/solver"
	"github.com/hailam/nutsort/internal/storage"
)

var (
	solveAlgorithm string
	solveInput     string
	solveMaxExp    int
	solveShowPath  bool
)

// solveCmd runs one engine on an instance
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a puzzle instance",
	Long: `Reads an instance as JSON (an array of pegs, each an array of one-letter
color strings, for example [["R","G"],["G","R"],[]]) from --input or stdin
and runs the chosen engine on it.

Exit status reflects the outcome: solved instances exit 0, everything else
returns an error.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveAlgorithm, "algorithm", "a", solver.AlgorithmBacktracking, "engine: backtracking or branch_and_bound")
	solveCmd.Flags().StringVarP(&solveInput, "input", "i", "", "instance file (defaults to stdin)")
	solveCmd.Flags().IntVar(&solveMaxExp, "max-expansions", 0, "expansion budget (0 = default, negative = unbounded)")
	solveCmd.Flags().BoolVar(&solveShowPath, "show-states", false, "print every intermediate state of the solution")
}

func readState(path string) (puzzle.State, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var state puzzle.State
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return nil, fmt.Errorf("parsing instance: %w", err)
	}
	return state, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	state, err := readState(solveInput)
	if err != nil {
		return err
	}

	limits := solver.Limits{MaxExpansions: solveMaxExp}

	started := time.Now()
	var res solver.Result
	switch solveAlgorithm {
	case solver.AlgorithmBacktracking:
		res = solver.SolveBacktracking(state, limits)
	case solver.AlgorithmBranchAndBound:
		res = solver.SolveBranchAndBound(state, limits)
	default:
		return fmt.Errorf("unknown algorithm %q", solveAlgorithm)
	}
	elapsed := time.Since(started)

	logger.Info("solve finished",
		zap.String("algorithm", solveAlgorithm),
		zap.String("outcome", res.Outcome.String()),
		zap.Int("expanded", res.Stats.Expanded),
		zap.Duration("elapsed", elapsed))

	if store, serr := openStore(); serr == nil && store != nil {
		rec := storage.SolveRecord{
			Algorithm: solveAlgorithm,
			Solved:    res.Outcome == solver.Solved,
			Moves:     len(res.Moves),
			Expanded:  res.Stats.Expanded,
		}
		if err := store.RecordSolve(rec); err != nil {
			logger.Warn("recording solve failed", zap.Error(err))
		}
		store.Close()
	}

	switch res.Outcome {
	case solver.Solved:
		fmt.Printf("solved in %d moves (expanded %d, max depth %d)\n",
			len(res.Moves), res.Stats.Expanded, res.Stats.MaxDepth)
		for i, m := range res.Moves {
			fmt.Printf("%3d. %s\n", i+1, m)
		}
		if solveShowPath {
			states, err := state.Replay(res.Moves)
			if err != nil {
				return err
			}
			for _, st := range states {
				fmt.Println(st)
				fmt.Println()
			}
		}
		return nil
	case solver.Inconclusive:
		return fmt.Errorf("no solution within the expansion budget (expanded %d)", res.Stats.Expanded)
	default:
		return fmt.Errorf("no solution exists (search exhausted after %d expansions)", res.Stats.Expanded)
	}
}
