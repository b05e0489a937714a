package puzzle

import (
	"encoding/json"
	"testing"
)

const (
	red    = Color('R')
	green  = Color('G')
	blue   = Color('B')
	yellow = Color('Y')
)

func TestStackPrimitives(t *testing.T) {
	p := Stack{red, red, green, green, green}

	if top, ok := p.Top(); !ok || top != green {
		t.Errorf("Top: got %c ok=%v, want G", top, ok)
	}
	if bottom, ok := p.Bottom(); !ok || bottom != red {
		t.Errorf("Bottom: got %c ok=%v, want R", bottom, ok)
	}
	if p.FreeSlots() != 0 {
		t.Errorf("FreeSlots: got %d, want 0", p.FreeSlots())
	}
	if p.TopRunLength() != 3 {
		t.Errorf("TopRunLength: got %d, want 3", p.TopRunLength())
	}
	if p.Runs() != 2 {
		t.Errorf("Runs: got %d, want 2", p.Runs())
	}
	if p.IsMonochrome() {
		t.Error("mixed stack reported as monochrome")
	}
	if p.IsFinished() {
		t.Error("mixed full stack reported as finished")
	}
	if p.Count(red) != 2 || p.CountOther(red) != 3 {
		t.Errorf("Count/CountOther: got %d/%d, want 2/3", p.Count(red), p.CountOther(red))
	}
	if p.LongestRun(green) != 3 {
		t.Errorf("LongestRun: got %d, want 3", p.LongestRun(green))
	}

	var empty Stack
	if _, ok := empty.Top(); ok {
		t.Error("empty stack has a top")
	}
	if empty.TopRunLength() != 0 {
		t.Error("empty stack has a top run")
	}
	if !empty.IsMonochrome() {
		t.Error("empty stack not monochrome")
	}
	if empty.IsFinished() {
		t.Error("empty stack reported as finished")
	}

	full := Stack{red, red, red, red, red}
	if !full.IsFinished() {
		t.Error("full monochrome stack not finished")
	}
}

func TestCanMove(t *testing.T) {
	cases := []struct {
		name string
		src  Stack
		dst  Stack
		want bool
	}{
		{"onto empty", Stack{red}, Stack{}, true},
		{"matching top", Stack{red}, Stack{green, red}, true},
		{"mismatched top", Stack{red}, Stack{green}, false},
		{"full destination", Stack{red}, Stack{green, green, green, green, red}, false},
		{"empty source", Stack{}, Stack{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanMove(tc.src, tc.dst); got != tc.want {
				t.Errorf("CanMove = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	s := State{
		{red, red, green},
		{green},
		{},
	}

	next, err := s.Apply(0, 1)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// Unit moved.
	if len(next[0]) != 2 || len(next[1]) != 2 {
		t.Errorf("wrong stack sizes after move: %v", next)
	}
	if top, _ := next[1].Top(); top != green {
		t.Errorf("moved unit is %c, want G", top)
	}

	// Original state untouched.
	if len(s[0]) != 3 || len(s[1]) != 1 {
		t.Errorf("Apply mutated its receiver: %v", s)
	}

	// Unit conservation.
	before, after := s.ColorCounts(), next.ColorCounts()
	for c, n := range before {
		if after[c] != n {
			t.Errorf("color %c count changed: %d -> %d", c, n, after[c])
		}
	}
}

func TestApplyErrors(t *testing.T) {
	s := State{{red}, {green}, {}}

	cases := []struct {
		name string
		i, j int
	}{
		{"source out of range", 5, 0},
		{"destination out of range", 0, 5},
		{"negative index", -1, 0},
		{"same peg", 0, 0},
		{"mismatched colors", 0, 1},
		{"empty source", 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Apply(tc.i, tc.j); err == nil {
				t.Errorf("Apply(%d, %d) succeeded, want IllegalMoveError", tc.i, tc.j)
			}
		})
	}
}

func TestIsGoal(t *testing.T) {
	goal := State{
		{red, red, red, red, red},
		{green, green, green, green, green},
		{},
	}
	if !goal.IsGoal() {
		t.Error("goal state not recognized")
	}

	partial := State{
		{red, red, red, red, red},
		{green, green, green, green},
		{green},
	}
	if partial.IsGoal() {
		t.Error("partial stack accepted as goal")
	}

	mixedFull := State{
		{red, red, red, red, green},
		{green, green, green, green, red},
	}
	if mixedFull.IsGoal() {
		t.Error("mixed full stack accepted as goal")
	}
}

func TestKey(t *testing.T) {
	a := State{{red, green}, {}}
	b := State{{red}, {green}}
	c := State{{red, green}, {}}

	if a.Key() == b.Key() {
		t.Errorf("distinct states share key %q", a.Key())
	}
	if a.Key() != c.Key() {
		t.Errorf("equal states have different keys: %q vs %q", a.Key(), c.Key())
	}
	if a.Key() != "RG//" {
		t.Errorf("unexpected key encoding: %q", a.Key())
	}
}

func TestMovePacking(t *testing.T) {
	m := NewMove(2, 5)
	if m.From() != 2 || m.To() != 5 {
		t.Errorf("got %d->%d, want 2->5", m.From(), m.To())
	}
	if m.String() != "P2->P5" {
		t.Errorf("String: got %q", m.String())
	}

	rev := NewMove(5, 2)
	if !rev.Reverses(m) {
		t.Error("5->2 does not reverse 2->5")
	}
	if m.Reverses(NoMove) {
		t.Error("a move cannot reverse the null move")
	}
}

func TestStateJSON(t *testing.T) {
	s := State{{red, green}, {}}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[["R","G"],[]]` {
		t.Errorf("unexpected encoding: %s", data)
	}

	var back State
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Key() != s.Key() {
		t.Errorf("round trip changed the state: %q vs %q", back.Key(), s.Key())
	}

	var bad State
	if err := json.Unmarshal([]byte(`[["RG"]]`), &bad); err == nil {
		t.Error("multi-letter color accepted")
	}
}

func TestReplay(t *testing.T) {
	s := State{{red, green}, {green}, {}}
	moves := []Move{NewMove(0, 1), NewMove(0, 2)}

	states, err := s.Replay(moves)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(states) != 3 {
		t.Fatalf("got %d states, want 3", len(states))
	}
	if states[0].Key() != s.Key() {
		t.Error("replay does not start with the input state")
	}
	final := states[len(states)-1]
	if len(final[0]) != 0 {
		t.Errorf("unexpected final state: %v", final)
	}

	if _, err := s.Replay([]Move{NewMove(2, 0)}); err == nil {
		t.Error("illegal replay move not reported")
	}
}
