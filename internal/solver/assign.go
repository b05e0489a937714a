package solver

import "github.com/hailam/nutsort/internal/puzzle"

// Assignment maps a peg index to the color it should end up holding. Each
// color is assigned to at most one peg; pegs without an entry (the empty
// buffer, or pegs whose anchor color lost the tie) act as general scratch
// space. The branch-and-bound engine computes the assignment once from the
// start state and keeps it fixed for the whole search.
type Assignment map[int]puzzle.Color

// AssignDestinations picks a destination peg per color. A peg is a candidate
// for the color sitting at its bottom (the "anchor"); among the candidates
// of one color the peg with the highest hybrid score wins:
//
//	3*(units of the color) + 2*(longest internal run of the color) - (foreign units)
//
// Colors are processed in first-seen anchor order and only a strictly better
// score replaces the current pick, so ties resolve to the lowest peg index
// deterministically.
func AssignDestinations(s puzzle.State) Assignment {
	candidates := make(map[puzzle.Color][]int)
	var order []puzzle.Color
	for i, p := range s {
		anchor, ok := p.Bottom()
		if !ok {
			continue
		}
		if _, seen := candidates[anchor]; !seen {
			order = append(order, anchor)
		}
		candidates[anchor] = append(candidates[anchor], i)
	}

	assign := make(Assignment, len(order))
	for _, color := range order {
		bestPeg := -1
		bestScore := 0
		for _, idx := range candidates[color] {
			p := s[idx]
			score := 3*p.Count(color) + 2*p.LongestRun(color) - p.CountOther(color)
			if bestPeg == -1 || score > bestScore {
				bestPeg = idx
				bestScore = score
			}
		}
		if bestPeg >= 0 {
			assign[bestPeg] = color
		}
	}
	return assign
}

// colorOf returns the color assigned to peg i, if any.
func (a Assignment) colorOf(i int) (puzzle.Color, bool) {
	c, ok := a[i]
	return c, ok
}
