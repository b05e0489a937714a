package solver

import (
	"sort"

	"github.com/hailam/nutsort/internal/puzzle"
)

// Backtracking move-ordering heuristics.
//
// H1 picks a "focus color": the color with the most stack tops, breaking
// ties by the longest existing top run and then by first appearance in the
// state, so ordering never depends on map iteration order.
//
// H2 scores each candidate move with a priority tuple, smaller = better,
// compared lexicographically.

// colorTally accumulates the H1 statistics for one color.
type colorTally struct {
	frequency int // stacks with this color on top
	bestRun   int // longest top run of this color in any stack
	firstSeen int // index of the first stack that showed it on top
}

// focusColor selects the H1 focus color. ok is false when every stack is
// empty.
func focusColor(s puzzle.State) (puzzle.Color, bool) {
	tallies := make(map[puzzle.Color]*colorTally)
	var order []puzzle.Color

	for idx, p := range s {
		c, hasTop := p.Top()
		if !hasTop {
			continue
		}
		t := tallies[c]
		if t == nil {
			t = &colorTally{firstSeen: idx}
			tallies[c] = t
			order = append(order, c)
		}
		t.frequency++
		if r := p.TopRunLength(); r > t.bestRun {
			t.bestRun = r
		}
	}
	if len(order) == 0 {
		return 0, false
	}

	best := order[0]
	for _, c := range order[1:] {
		bt, ct := tallies[best], tallies[c]
		if ct.frequency > bt.frequency ||
			(ct.frequency == bt.frequency && ct.bestRun > bt.bestRun) {
			best = c
		}
		// Equal frequency and run: keep the earlier first-seen color.
	}
	return best, true
}

// priorityTuple computes the H2 score for a candidate move. Components, in
// order of importance:
//
//	0: 0 when the move consolidates onto a matching top, else 1
//	1: 0 when consolidating onto the buffer (last peg), else 1
//	2: negative top-run length the destination would have after the move
//	3: negative top-run length the source has before the move
//	4: 0 when the destination is non-empty, 1 when using an empty peg
//	5: negative free slots remaining in the destination after the move
//	6: 1 when the move breaks a monochrome source of length > 1, else 0
func priorityTuple(s puzzle.State, m puzzle.Move) [7]int {
	src, dst := s[m.From()], s[m.To()]
	c, _ := src.Top()

	dstTop, dstNonEmpty := dst.Top()
	consolidates := dstNonEmpty && dstTop == c

	runAfter := 1
	if consolidates {
		runAfter = dst.TopRunLength() + 1
	}

	preferBuffer := 1
	if consolidates && m.To() == len(s)-1 {
		preferBuffer = 0
	}

	destEmptyCode := 0
	if !dstNonEmpty {
		destEmptyCode = 1
	}

	breakPure := 0
	if len(src) > 1 && src.IsMonochrome() {
		breakPure = 1
	}

	consolidateCode := 1
	if consolidates {
		consolidateCode = 0
	}

	return [7]int{
		consolidateCode,
		preferBuffer,
		-runAfter,
		-src.TopRunLength(),
		destEmptyCode,
		-(dst.FreeSlots() - 1),
		breakPure,
	}
}

// lessTuple compares two priority tuples lexicographically.
func lessTuple(a, b [7]int) bool {
	for k := range a {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

// orderedMoves enumerates all legal moves between non-finished stacks and
// orders them for the backtracking engine: focus-color moves first, then the
// rest, each group sorted by H2 priority. The stable sort keeps the
// source-major generation order on full ties, so results are reproducible.
func orderedMoves(s puzzle.State) []puzzle.Move {
	focus, hasFocus := focusColor(s)

	var focusMoves, otherMoves []puzzle.Move
	for _, m := range legalMoves(s) {
		if top, ok := s[m.From()].Top(); hasFocus && ok && top == focus {
			focusMoves = append(focusMoves, m)
		} else {
			otherMoves = append(otherMoves, m)
		}
	}

	// Tuples are computed up front and sorted alongside the moves; sorting
	// the move slice alone would desynchronize a parallel score slice.
	sortGroup := func(moves []puzzle.Move) {
		type scored struct {
			move  puzzle.Move
			tuple [7]int
		}
		items := make([]scored, len(moves))
		for k, m := range moves {
			items[k] = scored{move: m, tuple: priorityTuple(s, m)}
		}
		sort.SliceStable(items, func(a, b int) bool {
			return lessTuple(items[a].tuple, items[b].tuple)
		})
		for k := range items {
			moves[k] = items[k].move
		}
	}
	sortGroup(focusMoves)
	sortGroup(otherMoves)

	return append(focusMoves, otherMoves...)
}
