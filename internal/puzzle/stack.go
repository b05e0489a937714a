package puzzle

// Stack is one peg: an ordered sequence of colors, bottom to top. Length
// never exceeds Capacity. Stacks are treated as immutable values; Apply
// builds new ones rather than mutating in place.
type Stack []Color

// Top returns the topmost color and true, or false for an empty stack.
func (p Stack) Top() (Color, bool) {
	if len(p) == 0 {
		return 0, false
	}
	return p[len(p)-1], true
}

// Bottom returns the bottom color and true, or false for an empty stack.
func (p Stack) Bottom() (Color, bool) {
	if len(p) == 0 {
		return 0, false
	}
	return p[0], true
}

// FreeSlots returns the remaining room on the peg.
func (p Stack) FreeSlots() int {
	return Capacity - len(p)
}

// TopRunLength counts consecutive same-color units at the top of the stack,
// scanning downward until a different color or the bottom.
func (p Stack) TopRunLength() int {
	if len(p) == 0 {
		return 0
	}
	c := p[len(p)-1]
	k := 0
	for i := len(p) - 1; i >= 0 && p[i] == c; i-- {
		k++
	}
	return k
}

// IsMonochrome reports whether all units share one color. Stacks of length
// zero or one count as monochrome.
func (p Stack) IsMonochrome() bool {
	for i := 1; i < len(p); i++ {
		if p[i] != p[0] {
			return false
		}
	}
	return true
}

// IsFinished reports whether the peg is full and monochrome. A finished peg
// is frozen: it never participates in a move again. An empty peg is not
// finished; it stays available as a destination.
func (p Stack) IsFinished() bool {
	return len(p) == Capacity && p.IsMonochrome()
}

// Count returns how many units of color c the stack holds.
func (p Stack) Count(c Color) int {
	n := 0
	for _, x := range p {
		if x == c {
			n++
		}
	}
	return n
}

// CountOther returns how many units of a color other than c the stack holds.
func (p Stack) CountOther(c Color) int {
	return len(p) - p.Count(c)
}

// LongestRun returns the longest run of consecutive units of color c
// anywhere in the stack.
func (p Stack) LongestRun(c Color) int {
	best, cur := 0, 0
	for _, x := range p {
		if x == c {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 0
		}
	}
	return best
}

// Runs returns the number of maximal same-color runs in the stack.
func (p Stack) Runs() int {
	if len(p) == 0 {
		return 0
	}
	n := 1
	for i := 1; i < len(p); i++ {
		if p[i] != p[i-1] {
			n++
		}
	}
	return n
}
