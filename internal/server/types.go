package server

import (
	"github.com/hailam/nutsort/internal/puzzle"
	"github.com/hailam/nutsort/internal/solver"
)

// AlgorithmBacktracking and AlgorithmBranchAndBound are the engine
// identifiers accepted by the API.
const (
	AlgorithmBacktracking   = solver.AlgorithmBacktracking
	AlgorithmBranchAndBound = solver.AlgorithmBranchAndBound
)

// AlgorithmInfo describes one available solver.
type AlgorithmInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GenerateRequest asks for a fresh random instance. Either an explicit color
// alphabet or a count of standard colors may be given.
type GenerateRequest struct {
	Colors    []puzzle.Color `json:"colors"`
	NumColors int            `json:"num_colors"`
}

// GenerateResponse carries a newly generated instance.
type GenerateResponse struct {
	State  puzzle.State   `json:"state"`
	Colors []puzzle.Color `json:"colors"`
}

// SolveRequest asks one engine to solve an instance.
type SolveRequest struct {
	Algorithm     string         `json:"algorithm"`
	State         puzzle.State   `json:"state" binding:"required"`
	Colors        []puzzle.Color `json:"colors"`
	MaxExpansions int            `json:"max_expansions"`
}

// SolveResponse reports the engine result. LimitReached distinguishes a
// budget-exhausted (inconclusive) miss from a proven-unsolvable one.
type SolveResponse struct {
	Resolved     bool          `json:"resolved"`
	Moves        []puzzle.Move `json:"moves,omitempty"`
	NumMoves     int           `json:"num_moves"`
	Stats        solver.Stats  `json:"stats"`
	LimitReached bool          `json:"limit_reached"`
	Message      string        `json:"message"`
}

// ValidateRequest asks whether a state is a well-formed instance.
type ValidateRequest struct {
	State  puzzle.State   `json:"state" binding:"required"`
	Colors []puzzle.Color `json:"colors"`
}

// ValidateResponse carries the validation verdict.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
