package solver

import (
	"container/heap"
	"math/rand"
	"testing"

	"github.com/hailam/nutsort/internal/puzzle"
)

func TestBnBSolvesSimple(t *testing.T) {
	start := twoColorInstance()
	res := SolveBranchAndBound(start, Limits{})

	if res.Outcome != Solved {
		t.Fatalf("outcome = %s, want solved", res.Outcome)
	}
	checkSolution(t, start, res.Moves)
	if res.Stats.BestBound != len(res.Moves) {
		t.Errorf("best bound = %d, want %d (the solution cost)",
			res.Stats.BestBound, len(res.Moves))
	}
	t.Logf("solved in %d moves, expanded %d, pruned %d",
		len(res.Moves), res.Stats.Expanded, res.Stats.Pruned)
}

func TestBnBSolvedStart(t *testing.T) {
	res := SolveBranchAndBound(solvedInstance(), Limits{})

	if res.Outcome != Solved {
		t.Fatalf("outcome = %s, want solved", res.Outcome)
	}
	if len(res.Moves) != 0 {
		t.Errorf("got %d moves for a solved start, want 0", len(res.Moves))
	}
	if res.Moves == nil {
		t.Error("solved result must carry a non-nil move slice")
	}
	if res.Stats.Expanded != 1 {
		t.Errorf("expanded = %d, want 1", res.Stats.Expanded)
	}
	if res.Stats.BestBound != 0 {
		t.Errorf("best bound = %d, want 0", res.Stats.BestBound)
	}
}

func TestBnBInfeasibleStart(t *testing.T) {
	// Six reds: rejected before any expansion.
	s := puzzle.State{
		{red, red, red, red, red},
		{red, green},
		{},
	}
	res := SolveBranchAndBound(s, Limits{})

	if res.Outcome != Unsolvable {
		t.Fatalf("outcome = %s, want unsolvable", res.Outcome)
	}
	if res.Stats.Expanded != 0 {
		t.Errorf("expanded = %d, want 0", res.Stats.Expanded)
	}
	if res.Stats.BestBound != -1 {
		t.Errorf("best bound = %d, want -1 sentinel", res.Stats.BestBound)
	}
}

func TestBnBBudget(t *testing.T) {
	res := SolveBranchAndBound(twoColorInstance(), Limits{MaxExpansions: 1})

	if res.Outcome != Inconclusive {
		t.Fatalf("outcome = %s, want inconclusive", res.Outcome)
	}
	if res.Stats.Expanded != 1 {
		t.Errorf("expanded = %d, want 1", res.Stats.Expanded)
	}
}

func TestBnBShuffled(t *testing.T) {
	for _, numColors := range []int{3, 4} {
		colors, _ := puzzle.Palette(numColors)
		for seed := int64(0); seed < 3; seed++ {
			rng := rand.New(rand.NewSource(2000 + seed))
			start := puzzle.ShuffledState(colors, rng, 12)

			res := SolveBranchAndBound(start, Limits{MaxExpansions: 2_000_000})
			if res.Outcome != Solved {
				t.Errorf("%d colors seed %d: outcome = %s, want solved",
					numColors, seed, res.Outcome)
				continue
			}
			checkSolution(t, start, res.Moves)
		}
	}
}

// bfsOptimum exhaustively finds the shortest solution length via
// breadth-first search, or -1 when no solution exists. Only practical for
// small instances; it is the oracle for the optimality test below.
func bfsOptimum(start puzzle.State) int {
	if start.IsGoal() {
		return 0
	}
	type entry struct {
		state puzzle.State
		depth int
	}
	visited := map[string]struct{}{start.Key(): {}}
	queue := []entry{{state: start, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, m := range legalMoves(cur.state) {
			child, err := cur.state.ApplyMove(m)
			if err != nil {
				continue
			}
			if child.IsGoal() {
				return cur.depth + 1
			}
			key := child.Key()
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			queue = append(queue, entry{state: child, depth: cur.depth + 1})
		}
	}
	return -1
}

func TestBnBOptimalOnSmallInstances(t *testing.T) {
	// On small alphabets the solution length must equal the true minimum
	// found by exhaustive enumeration.
	for _, numColors := range []int{2, 3} {
		colors, _ := puzzle.Palette(numColors)
		for seed := int64(0); seed < 6; seed++ {
			rng := rand.New(rand.NewSource(4000 + seed))
			start := puzzle.ShuffledState(colors, rng, 8+int(seed))

			optimum := bfsOptimum(start)
			if optimum < 0 {
				t.Fatalf("%d colors seed %d: oracle found no solution for a shuffled instance",
					numColors, seed)
			}

			res := SolveBranchAndBound(start, Limits{MaxExpansions: 2_000_000})
			if res.Outcome != Solved {
				t.Errorf("%d colors seed %d: outcome = %s, want solved",
					numColors, seed, res.Outcome)
				continue
			}
			checkSolution(t, start, res.Moves)
			if len(res.Moves) != optimum {
				t.Errorf("%d colors seed %d: got %d moves, want optimum %d",
					numColors, seed, len(res.Moves), optimum)
			}
			t.Logf("%d colors seed %d: optimal at %d moves (expanded %d, pruned %d)",
				numColors, seed, optimum, res.Stats.Expanded, res.Stats.Pruned)
		}
	}
}

func TestBnBAgreesWithBacktracking(t *testing.T) {
	colors, _ := puzzle.Palette(3)
	start := puzzle.ShuffledState(colors, rand.New(rand.NewSource(5)), 10)

	bt := SolveBacktracking(start, Limits{})
	bnb := SolveBranchAndBound(start, Limits{MaxExpansions: 2_000_000})

	if bt.Outcome != Solved || bnb.Outcome != Solved {
		t.Fatalf("outcomes: backtracking %s, branch-and-bound %s", bt.Outcome, bnb.Outcome)
	}
	checkSolution(t, start, bnb.Moves)
	t.Logf("backtracking %d moves, branch-and-bound %d moves",
		len(bt.Moves), len(bnb.Moves))
}

func TestNodeQueueOrdering(t *testing.T) {
	q := &nodeQueue{}
	heap.Init(q)
	push := func(g, h int) {
		heap.Push(q, &node{g: g, h: h, f: g + h})
	}
	push(3, 4) // f=7
	push(2, 3) // f=5
	push(1, 4) // f=5, shallower of the tie
	push(0, 9) // f=9

	first := heap.Pop(q).(*node)
	if first.f != 5 || first.g != 1 {
		t.Errorf("first pop f=%d g=%d, want f=5 g=1", first.f, first.g)
	}
	second := heap.Pop(q).(*node)
	if second.f != 5 || second.g != 2 {
		t.Errorf("second pop f=%d g=%d, want f=5 g=2", second.f, second.g)
	}
	third := heap.Pop(q).(*node)
	if third.f != 7 {
		t.Errorf("third pop f=%d, want 7", third.f)
	}
}
