package puzzle

import (
	"errors"
	"fmt"
	"math/rand"
)

// SeenStore deduplicates generated instances across runs. The generator only
// ever calls these two methods; the Badger-backed implementation lives in
// internal/storage.
type SeenStore interface {
	Contains(key string) (bool, error)
	Insert(key string) error
}

// ErrExhausted is returned when no unseen instance could be generated within
// the attempt budget.
var ErrExhausted = errors.New("could not generate an unseen instance")

// RandomState builds a uniformly shuffled instance: Capacity units of each
// color dealt into one full peg per color, plus a trailing empty buffer.
// The result always passes Validate but is not guaranteed to be reachable
// from a solved position.
func RandomState(colors []Color, rng *rand.Rand) State {
	units := make([]Color, 0, len(colors)*Capacity)
	for _, c := range colors {
		for k := 0; k < Capacity; k++ {
			units = append(units, c)
		}
	}
	rng.Shuffle(len(units), func(i, j int) {
		units[i], units[j] = units[j], units[i]
	})

	s := make(State, 0, len(colors)+1)
	for i := 0; i < len(colors); i++ {
		p := make(Stack, Capacity)
		copy(p, units[i*Capacity:(i+1)*Capacity])
		s = append(s, p)
	}
	s = append(s, Stack{})
	return s
}

// ShuffledState starts from the solved configuration and applies the given
// number of random legal moves, so the result is always solvable. If the
// walk accidentally lands back on a goal state, it retries with a longer
// walk.
//
// Because a legal move only ever lands on an empty peg or a matching top,
// the walk keeps every stack monochrome no matter how long it runs, and the
// resulting instances solve in a handful of moves. RandomState is the source
// of genuinely hard (mixed-stack) instances.
func ShuffledState(colors []Color, rng *rand.Rand, moves int) State {
	for {
		s := solvedState(colors)
		for step := 0; step < moves; step++ {
			candidates := legalShuffleMoves(s)
			if len(candidates) == 0 {
				break
			}
			m := candidates[rng.Intn(len(candidates))]
			next, err := s.ApplyMove(m)
			if err != nil {
				continue
			}
			s = next
		}
		if !s.IsGoal() {
			return s
		}
		moves++
	}
}

// solvedState is one full monochrome peg per color plus the empty buffer.
func solvedState(colors []Color) State {
	s := make(State, 0, len(colors)+1)
	for _, c := range colors {
		p := make(Stack, Capacity)
		for k := range p {
			p[k] = c
		}
		s = append(s, p)
	}
	s = append(s, Stack{})
	return s
}

// legalShuffleMoves enumerates every move allowed during shuffling. Unlike
// solver move generation, finished stacks are fair game here: breaking them
// apart is the whole point of the walk.
func legalShuffleMoves(s State) []Move {
	var moves []Move
	for i := range s {
		if len(s[i]) == 0 {
			continue
		}
		for j := range s {
			if i == j {
				continue
			}
			if CanMove(s[i], s[j]) {
				moves = append(moves, NewMove(i, j))
			}
		}
	}
	return moves
}

// UniqueRandomState generates a random instance whose canonical key is not
// yet present in the store, inserting the key on success. It gives up after
// maxAttempts tries with ErrExhausted.
func UniqueRandomState(colors []Color, store SeenStore, rng *rand.Rand, maxAttempts int) (State, error) {
	if maxAttempts <= 0 {
		maxAttempts = 1000
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		s := RandomState(colors, rng)
		key := s.Key()
		seen, err := store.Contains(key)
		if err != nil {
			return nil, fmt.Errorf("dedup lookup: %w", err)
		}
		if seen {
			continue
		}
		if err := store.Insert(key); err != nil {
			return nil, fmt.Errorf("dedup insert: %w", err)
		}
		return s, nil
	}
	return nil, ErrExhausted
}
