package solver

import (
	"container/heap"

	"github.com/hailam/nutsort/internal/puzzle"
)

// node is one entry of the branch-and-bound frontier: a state, the move
// sequence that produced it, and its cost bookkeeping (g moves so far, h
// lower bound, f = g + h).
type node struct {
	state puzzle.State
	path  []puzzle.Move
	g     int
	h     int
	f     int
}

// nodeQueue is a min-heap over f, tie-broken by g ascending so that of two
// equally promising nodes the shallower one is tried first.
type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].g < q[j].g
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(*node)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// SolveBranchAndBound runs the best-first branch-and-bound engine. The
// destination assignment is computed once from the start state; the frontier
// is ordered by f = g + h; nodes are pruned against the best known solution
// cost, against infeasibility, and against a per-state best-g map keyed by
// the canonical encoding. When the queue drains within the budget, the
// returned solution (if any) is cost-minimal modulo the soundness of the
// lower bound.
func SolveBranchAndBound(start puzzle.State, limits Limits) Result {
	budget := limits.maxExpansions()
	stats := Stats{BestBound: -1}

	assign := AssignDestinations(start)
	if Infeasible(start, assign) {
		return Result{Stats: stats, Outcome: Unsolvable}
	}

	var best []puzzle.Move
	bestCost := 0
	hasBest := false

	h0 := LowerBound(start, assign)
	q := &nodeQueue{{state: start, path: []puzzle.Move{}, g: 0, h: h0, f: h0}}
	heap.Init(q)

	bestG := map[string]int{start.Key(): 0}
	limitHit := false

	for q.Len() > 0 {
		cur := heap.Pop(q).(*node)

		if budget > 0 && stats.Expanded >= budget {
			limitHit = true
			break
		}
		stats.Expanded++
		if len(cur.path) > stats.MaxDepth {
			stats.MaxDepth = len(cur.path)
		}

		if cur.state.IsGoal() {
			if !hasBest || cur.g < bestCost {
				best = cur.path
				bestCost = cur.g
				hasBest = true
				stats.BestBound = bestCost
			}
			// Goal nodes are never expanded further.
			continue
		}

		if hasBest && cur.f >= bestCost {
			stats.Pruned++
			continue
		}
		if Infeasible(cur.state, assign) {
			stats.Pruned++
			continue
		}

		// No heuristic move ordering here: the queue already orders the
		// frontier by estimated total cost.
		for _, m := range legalMoves(cur.state) {
			child, err := cur.state.ApplyMove(m)
			if err != nil {
				continue
			}

			g := cur.g + 1
			h := LowerBound(child, assign)
			f := g + h

			if hasBest && f >= bestCost {
				stats.Pruned++
				continue
			}
			if Infeasible(child, assign) {
				stats.Pruned++
				continue
			}

			key := child.Key()
			if prev, ok := bestG[key]; ok && prev <= g {
				// An equal-or-better path already reached this state.
				continue
			}
			bestG[key] = g

			path := make([]puzzle.Move, len(cur.path)+1)
			copy(path, cur.path)
			path[len(path)-1] = m
			heap.Push(q, &node{state: child, path: path, g: g, h: h, f: f})
		}
	}

	if hasBest {
		return Result{Moves: best, Stats: stats, Outcome: Solved}
	}
	if limitHit {
		return Result{Stats: stats, Outcome: Inconclusive}
	}
	return Result{Stats: stats, Outcome: Unsolvable}
}
