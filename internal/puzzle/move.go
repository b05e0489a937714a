package puzzle

import (
	"encoding/json"
	"fmt"
)

// Move encodes a top-to-top transfer in 12 bits:
// bits 0-5:  source peg index
// bits 6-11: destination peg index
// A move between the same peg is never legal, so the zero value doubles as
// the null move.
type Move uint16

// NoMove represents the absence of a move (e.g. no preceding move yet).
const NoMove Move = 0

// NewMove creates a move from peg i to peg j.
func NewMove(i, j int) Move {
	return Move(i) | Move(j)<<6
}

// From returns the source peg index.
func (m Move) From() int {
	return int(m & 0x3F)
}

// To returns the destination peg index.
func (m Move) To() int {
	return int((m >> 6) & 0x3F)
}

// Reverses reports whether m exactly undoes prev.
func (m Move) Reverses(prev Move) bool {
	return prev != NoMove && m.From() == prev.To() && m.To() == prev.From()
}

// String returns the move as "P2->P5".
func (m Move) String() string {
	return fmt.Sprintf("P%d->P%d", m.From(), m.To())
}

// MarshalJSON encodes the move as a [from, to] pair.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{m.From(), m.To()})
}

// UnmarshalJSON decodes a [from, to] pair.
func (m *Move) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if pair[0] < 0 || pair[0] > 0x3F || pair[1] < 0 || pair[1] > 0x3F {
		return fmt.Errorf("move indices out of range: %v", pair)
	}
	*m = NewMove(pair[0], pair[1])
	return nil
}
