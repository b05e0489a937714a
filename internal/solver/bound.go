package solver

import "github.com/hailam/nutsort/internal/puzzle"

// LowerBound estimates the number of moves still needed to solve s under the
// given destination assignment. The terms are summed independently and can
// overlap (a foreign unit may count both as occupying a destination and as
// sitting away from its own), so the bound is deliberately optimistic and
// heuristic rather than strictly admissible. Zero iff already solved or the
// estimate collapses to nothing.
func LowerBound(s puzzle.State, assign Assignment) int {
	if s.IsGoal() {
		return 0
	}

	est := 0

	for peg, color := range assign {
		dst := s[peg]
		inDst := dst.Count(color)

		// Units still missing from the destination each need at least one
		// incoming move.
		if missing := puzzle.Capacity - inDst; missing > 0 {
			est += missing
		}

		// Foreign units occupying the destination each need to leave.
		est += dst.CountOther(color)

		// A wrong-colored bottom traps every matching unit above it: the
		// stack has to be evacuated and rebuilt.
		if bottom, ok := dst.Bottom(); ok && bottom != color {
			est += inDst
		}
	}

	// Units of an assigned color sitting on any other peg need at least one
	// move each to reach their destination.
	for peg, color := range assign {
		for i, p := range s {
			if i == peg {
				continue
			}
			est += p.Count(color)
		}
	}

	// Unassigned mixed pegs need at least runs-1 moves of cleanup.
	for i, p := range s {
		if _, assigned := assign[i]; assigned {
			continue
		}
		if len(p) > 0 && !p.IsMonochrome() {
			est += p.Runs() - 1
		}
	}

	return est
}

// Infeasible detects states that can never reach the goal, so the search can
// prune them outright:
//
//  1. some color has more than Capacity units in total, or
//  2. an assigned peg is full with a wrong-colored bottom and the combined
//     free capacity of all other non-finished pegs cannot absorb the foreign
//     units that would have to be evacuated from it.
func Infeasible(s puzzle.State, assign Assignment) bool {
	for _, count := range s.ColorCounts() {
		if count > puzzle.Capacity {
			return true
		}
	}

	for peg, color := range assign {
		p := s[peg]
		if len(p) != puzzle.Capacity {
			continue
		}
		bottom, _ := p.Bottom()
		if bottom == color {
			continue
		}
		free := 0
		for j, q := range s {
			if j == peg || q.IsFinished() {
				continue
			}
			free += q.FreeSlots()
		}
		if free < p.CountOther(color) {
			return true
		}
	}
	return false
}
