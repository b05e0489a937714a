package puzzle

import "fmt"

// ValidationError reports a starting configuration that does not match the
// expected instance shape. It is surfaced to the top-level caller, never
// swallowed by the solvers.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid instance: " + e.Reason
}

// Validate checks that s is a well-formed starting instance for the given
// color alphabet: one peg per color plus a trailing empty buffer, with every
// non-buffer peg full. The solvers assume validated input and do not repeat
// these checks.
func Validate(s State, colors []Color) error {
	if len(s) != len(colors)+1 {
		return &ValidationError{Reason: fmt.Sprintf("want %d pegs (%d colors + buffer), have %d",
			len(colors)+1, len(colors), len(s))}
	}
	for k, p := range s[:len(s)-1] {
		if len(p) != Capacity {
			return &ValidationError{Reason: fmt.Sprintf("peg P%d is not full (len=%d, want %d)",
				k, len(p), Capacity)}
		}
	}
	if len(s[len(s)-1]) != 0 {
		return &ValidationError{Reason: "last peg (buffer) must be empty"}
	}
	return nil
}
