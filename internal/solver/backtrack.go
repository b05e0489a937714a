package solver

import "github.com/hailam/nutsort/internal/puzzle"

// SolveBacktracking runs the depth-first backtracking engine: heuristically
// ordered candidates (H1/H2), a visited-state set to avoid cycles, and
// skipping of moves that immediately reverse the previous one. The recursion
// is converted to an explicit heap-allocated frame stack, so solution depth
// is not limited by the goroutine stack.
func SolveBacktracking(start puzzle.State, limits Limits) Result {
	budget := limits.maxExpansions()
	stats := Stats{BestBound: -1}
	visited := map[string]struct{}{start.Key(): {}}

	// One frame per state on the current path. moves stays nil until the
	// frame is first processed, which is also when the expansion is counted.
	type frame struct {
		state   puzzle.State
		moves   []puzzle.Move
		next    int
		last    puzzle.Move
		entered bool
	}

	frames := []*frame{{state: start, last: puzzle.NoMove}}
	path := make([]puzzle.Move, 0, 64)

	for len(frames) > 0 {
		f := frames[len(frames)-1]

		if !f.entered {
			f.entered = true
			stats.Expanded++
			if len(path) > stats.MaxDepth {
				stats.MaxDepth = len(path)
			}
			if budget > 0 && stats.Expanded >= budget {
				return Result{Stats: stats, Outcome: Inconclusive}
			}
			if f.state.IsGoal() {
				moves := make([]puzzle.Move, len(path))
				copy(moves, path)
				return Result{Moves: moves, Stats: stats, Outcome: Solved}
			}
			f.moves = orderedMoves(f.state)
		}

		descended := false
		for f.next < len(f.moves) {
			m := f.moves[f.next]
			f.next++

			// (i,j) directly after (j,i) only oscillates.
			if m.Reverses(f.last) {
				continue
			}
			// Re-validate immediately before applying; an illegal candidate
			// is skipped, never fatal.
			if !puzzle.CanMove(f.state[m.From()], f.state[m.To()]) {
				continue
			}
			child, err := f.state.ApplyMove(m)
			if err != nil {
				continue
			}
			key := child.Key()
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}

			frames = append(frames, &frame{state: child, last: m})
			path = append(path, m)
			descended = true
			break
		}

		if !descended {
			// All candidates tried: backtrack.
			frames = frames[:len(frames)-1]
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		}
	}

	// Every branch exhausted without spending the budget: no solution is
	// reachable without revisiting a state.
	return Result{Stats: stats, Outcome: Unsolvable}
}
