package puzzle

import (
	"fmt"
	"strings"
)

// State is the full puzzle position: an ordered sequence of stacks. States
// are immutable values; Apply returns a fresh State and shares only stacks
// the move did not touch (stacks themselves are never mutated).
type State []Stack

// IllegalMoveError reports a move that violates the legality rule or
// references an out-of-range peg. It is always recoverable: callers skip the
// offending candidate and continue.
type IllegalMoveError struct {
	From   int
	To     int
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move P%d->P%d: %s", e.From, e.To, e.Reason)
}

// CanMove reports whether the top of src may be placed on dst: src must be
// non-empty, dst must have room, and a non-empty dst must show the same
// color on top.
func CanMove(src, dst Stack) bool {
	st, ok := src.Top()
	if !ok {
		return false
	}
	if dst.FreeSlots() <= 0 {
		return false
	}
	dt, ok := dst.Top()
	return !ok || st == dt
}

// IsGoal reports whether every stack is either empty or finished.
func (s State) IsGoal() bool {
	for _, p := range s {
		if len(p) == 0 {
			continue
		}
		if !p.IsFinished() {
			return false
		}
	}
	return true
}

// Apply moves the top of stack i onto stack j and returns the new state.
// Out-of-range indices, i == j, and moves failing CanMove all yield an
// IllegalMoveError; Apply never silently no-ops.
func (s State) Apply(i, j int) (State, error) {
	if i < 0 || i >= len(s) {
		return nil, &IllegalMoveError{From: i, To: j, Reason: "source index out of range"}
	}
	if j < 0 || j >= len(s) {
		return nil, &IllegalMoveError{From: i, To: j, Reason: "destination index out of range"}
	}
	if i == j {
		return nil, &IllegalMoveError{From: i, To: j, Reason: "source equals destination"}
	}
	if !CanMove(s[i], s[j]) {
		return nil, &IllegalMoveError{From: i, To: j, Reason: "move violates legality rule"}
	}

	src := s[i]
	moved := src[len(src)-1]

	newSrc := make(Stack, len(src)-1)
	copy(newSrc, src[:len(src)-1])

	newDst := make(Stack, len(s[j])+1)
	copy(newDst, s[j])
	newDst[len(newDst)-1] = moved

	next := make(State, len(s))
	copy(next, s)
	next[i] = newSrc
	next[j] = newDst
	return next, nil
}

// ApplyMove is Apply with a packed Move.
func (s State) ApplyMove(m Move) (State, error) {
	return s.Apply(m.From(), m.To())
}

// Key returns a canonical structural encoding of the state: the colors of
// each stack bottom-to-top, stacks separated by '/'. Two states are
// structurally equal iff their keys are equal, so the key is safe for
// visited sets, best-cost maps, and the dedup store.
func (s State) Key() string {
	var b strings.Builder
	b.Grow(len(s) * (Capacity + 1))
	for _, p := range s {
		for _, c := range p {
			b.WriteByte(byte(c))
		}
		b.WriteByte('/')
	}
	return b.String()
}

// String renders the state as "P0: R G | P1: <empty> | ...".
func (s State) String() string {
	parts := make([]string, len(s))
	for k, p := range s {
		if len(p) == 0 {
			parts[k] = fmt.Sprintf("P%d: <empty>", k)
			continue
		}
		syms := make([]string, len(p))
		for i, c := range p {
			syms[i] = c.String()
		}
		parts[k] = fmt.Sprintf("P%d: %s", k, strings.Join(syms, " "))
	}
	return strings.Join(parts, " | ")
}

// ColorCounts tallies every color present in the state.
func (s State) ColorCounts() map[Color]int {
	counts := make(map[Color]int)
	for _, p := range s {
		for _, c := range p {
			counts[c]++
		}
	}
	return counts
}

// Replay applies a move sequence to the state and returns every intermediate
// state, starting with s itself. It fails on the first illegal move.
func (s State) Replay(moves []Move) ([]State, error) {
	states := make([]State, 0, len(moves)+1)
	states = append(states, s)
	cur := s
	for t, m := range moves {
		next, err := cur.ApplyMove(m)
		if err != nil {
			return nil, fmt.Errorf("replay failed at move %d (%s): %w", t, m, err)
		}
		states = append(states, next)
		cur = next
	}
	return states, nil
}
