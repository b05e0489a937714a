package solver

import (
	"testing"

	"github.com/hailam/nutsort/internal/puzzle"
)

func TestFocusColorFrequency(t *testing.T) {
	// G tops two stacks, R tops one.
	s := puzzle.State{
		{red, green},
		{red, green},
		{green, red},
		{},
	}
	c, ok := focusColor(s)
	if !ok || c != green {
		t.Errorf("focus = %c ok=%v, want G", c, ok)
	}
}

func TestFocusColorRunTieBreak(t *testing.T) {
	// R and G each top one stack; G has the longer top run.
	s := puzzle.State{
		{blue, red},
		{green, green, green},
		{},
	}
	c, ok := focusColor(s)
	if !ok || c != green {
		t.Errorf("focus = %c ok=%v, want G", c, ok)
	}
}

func TestFocusColorFirstSeenTieBreak(t *testing.T) {
	// Full tie between R and G: the color seen first (lowest stack index)
	// wins.
	s := puzzle.State{
		{red},
		{green},
		{},
	}
	c, ok := focusColor(s)
	if !ok || c != red {
		t.Errorf("focus = %c ok=%v, want R", c, ok)
	}
}

func TestFocusColorAllEmpty(t *testing.T) {
	s := puzzle.State{{}, {}, {}}
	if _, ok := focusColor(s); ok {
		t.Error("focus reported for an all-empty state")
	}
}

func TestPriorityTupleConsolidationFirst(t *testing.T) {
	// From P0, the R on top can go to P1 (consolidating onto R) or to P3
	// (empty). The consolidating move must score strictly better.
	s := puzzle.State{
		{green, red},
		{red, red},
		{green},
		{},
	}
	consolidate := priorityTuple(s, puzzle.NewMove(0, 1))
	ontoEmpty := priorityTuple(s, puzzle.NewMove(0, 3))

	if !lessTuple(consolidate, ontoEmpty) {
		t.Errorf("consolidation %v not preferred over empty peg %v",
			consolidate, ontoEmpty)
	}
}

func TestPriorityTupleBufferPreference(t *testing.T) {
	// Two consolidating destinations for the R on P0: a middle peg and the
	// buffer (last peg). The buffer wins.
	s := puzzle.State{
		{green, red},
		{red},
		{green},
		{red},
	}
	ontoMiddle := priorityTuple(s, puzzle.NewMove(0, 1))
	ontoBuffer := priorityTuple(s, puzzle.NewMove(0, 3))

	if !lessTuple(ontoBuffer, ontoMiddle) {
		t.Errorf("buffer consolidation %v not preferred over middle peg %v",
			ontoBuffer, ontoMiddle)
	}
}

func TestOrderedMovesFocusGroupFirst(t *testing.T) {
	// G is the focus color (two tops). Every move whose source top is G must
	// come before every move whose source top is not.
	s := puzzle.State{
		{red, green},
		{blue, green},
		{green, red},
		{},
	}
	focus, ok := focusColor(s)
	if !ok || focus != green {
		t.Fatalf("focus = %c ok=%v, want G", focus, ok)
	}

	moves := orderedMoves(s)
	if len(moves) == 0 {
		t.Fatal("no moves generated")
	}
	seenOther := false
	for _, m := range moves {
		top, _ := s[m.From()].Top()
		if top != focus {
			seenOther = true
		} else if seenOther {
			t.Fatalf("focus move %s ordered after a non-focus move", m)
		}
	}
}

func TestOrderedMovesDeterministic(t *testing.T) {
	s := puzzle.State{
		{red, green},
		{blue, green},
		{green, red},
		{yellow},
		{},
	}
	first := orderedMoves(s)
	second := orderedMoves(s)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("move %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}
