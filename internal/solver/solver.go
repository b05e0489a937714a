// Package solver implements two search engines for the nut-sort puzzle: a
// heuristically ordered depth-first backtracking solver and a best-first
// branch-and-bound solver with lower-bound pruning. Both consume the state
// model from internal/puzzle and share one solve contract.
package solver

import "github.com/hailam/nutsort/internal/puzzle"

// DefaultMaxExpansions bounds a search when the caller passes no explicit
// budget.
const DefaultMaxExpansions = 500_000

// Engine identifiers, used wherever a solver is selected by name.
const (
	AlgorithmBacktracking   = "backtracking"
	AlgorithmBranchAndBound = "branch_and_bound"
)

// Limits constrains a single solve call.
type Limits struct {
	// MaxExpansions caps how many states the engine may enter/pop.
	// Zero selects DefaultMaxExpansions; negative means unbounded.
	MaxExpansions int
}

func (l Limits) maxExpansions() int {
	switch {
	case l.MaxExpansions == 0:
		return DefaultMaxExpansions
	case l.MaxExpansions < 0:
		return 0 // unbounded
	default:
		return l.MaxExpansions
	}
}

// Stats are the per-invocation search counters. They are created at solve
// start, updated throughout, and returned by value.
type Stats struct {
	// Expanded counts states entered (backtracking) or popped (BnB).
	Expanded int `json:"expanded"`
	// MaxDepth is the longest path length observed.
	MaxDepth int `json:"max_depth"`
	// Pruned counts discarded branch-and-bound nodes. Always zero for
	// backtracking.
	Pruned int `json:"pruned,omitempty"`
	// BestBound is the cost of the best solution branch-and-bound has
	// recorded, or -1 while none exists.
	BestBound int `json:"best_bound"`
}

// Outcome classifies a solve result.
type Outcome int

const (
	// Solved: a goal-reaching move sequence was found.
	Solved Outcome = iota
	// Unsolvable: the search space was exhausted without exceeding the
	// budget, so no solution is reachable without revisiting a state.
	Unsolvable
	// Inconclusive: the expansion budget ran out before the search space
	// did. The instance may or may not be solvable.
	Inconclusive
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Unsolvable:
		return "unsolvable"
	case Inconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// Result is the shared return shape of both engines. Moves is nil unless
// Outcome is Solved; replaying Moves from the input state via ApplyMove
// reaches a goal state.
type Result struct {
	Moves   []puzzle.Move
	Stats   Stats
	Outcome Outcome
}

// legalMoves enumerates every legal move between two non-finished stacks,
// source-major. Finished stacks are frozen on both ends.
func legalMoves(s puzzle.State) []puzzle.Move {
	var moves []puzzle.Move
	for i := range s {
		if s[i].IsFinished() {
			continue
		}
		for j := range s {
			if i == j || s[j].IsFinished() {
				continue
			}
			if puzzle.CanMove(s[i], s[j]) {
				moves = append(moves, puzzle.NewMove(i, j))
			}
		}
	}
	return moves
}
