// Package puzzle implements the nut-sort puzzle model: colored units stacked
// on pegs of fixed capacity, top-to-top transfer moves, and instance
// generation and validation.
package puzzle

import "fmt"

// Capacity is the number of units each peg holds. A peg is finished once it
// carries Capacity units of a single color.
const Capacity = 5

// MaxColors is the largest color alphabet an instance may use.
const MaxColors = 15

// StandardColors is the default color alphabet, in assignment order.
const StandardColors = "RGBYOVPCMSLTDAI"

// Color is a single colored unit, identified by its symbol byte.
type Color byte

// String returns the one-letter symbol of the color.
func (c Color) String() string {
	return string(byte(c))
}

// MarshalJSON encodes the color as its one-letter string symbol.
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte{'"', byte(c), '"'}, nil
}

// UnmarshalJSON decodes a one-letter string symbol.
func (c *Color) UnmarshalJSON(data []byte) error {
	if len(data) != 3 || data[0] != '"' || data[2] != '"' {
		return fmt.Errorf("invalid color %s: want a one-letter string", data)
	}
	*c = Color(data[1])
	return nil
}

// Palette returns the first n standard colors.
func Palette(n int) ([]Color, error) {
	if n < 1 || n > MaxColors {
		return nil, fmt.Errorf("palette size %d out of range [1, %d]", n, MaxColors)
	}
	colors := make([]Color, n)
	for i := 0; i < n; i++ {
		colors[i] = Color(StandardColors[i])
	}
	return colors, nil
}
