// Package server exposes the solvers over HTTP for the browser UI. The API
// mirrors four operations: list algorithms, generate a unique instance,
// validate an instance, and solve one with a chosen engine.
package server

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hailam/nutsort/internal/puzzle"
	"github.com/hailam/nutsort/internal/solver"
)

// maxGenerateAttempts bounds the unique-instance retry loop per request.
const maxGenerateAttempts = 1000

// Server holds the handler dependencies.
type Server struct {
	seen puzzle.SeenStore
	log  *zap.Logger
	rng  *rand.Rand
}

// New creates a server using the given dedup store. A nil logger disables
// logging.
func New(seen puzzle.SeenStore, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		seen: seen,
		log:  log,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/algorithms", s.handleAlgorithms)
	api.POST("/instances/generate", s.handleGenerate)
	api.POST("/instances/validate", s.handleValidate)
	api.POST("/solve", s.handleSolve)

	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("serving nut-sort API", zap.String("addr", addr))
	return s.Router().Run(addr)
}

// handleAlgorithms lists the available engines.
func (s *Server) handleAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"algorithms": []AlgorithmInfo{
			{
				ID:          AlgorithmBacktracking,
				Name:        "Backtracking",
				Description: "Depth-first search with heuristic move ordering and backtracking",
			},
			{
				ID:          AlgorithmBranchAndBound,
				Name:        "Branch and Bound",
				Description: "Best-first search with lower-bound pruning",
			},
		},
	})
}

// handleGenerate produces a random instance whose key has not been handed
// out before.
func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	colors := req.Colors
	if len(colors) == 0 {
		var err error
		colors, err = puzzle.Palette(req.NumColors)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_COLORS"})
			return
		}
	}
	if len(colors) > puzzle.MaxColors {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("at most %d colors supported", puzzle.MaxColors),
			Code:  "INVALID_COLORS",
		})
		return
	}

	state, err := puzzle.UniqueRandomState(colors, s.seen, s.rng, maxGenerateAttempts)
	if err != nil {
		if errors.Is(err, puzzle.ErrExhausted) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error: "could not generate an unseen instance, try again",
				Code:  "GENERATION_EXHAUSTED",
			})
			return
		}
		s.log.Error("instance generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "STORE_FAILURE"})
		return
	}

	s.log.Info("generated instance", zap.Int("colors", len(colors)))
	c.JSON(http.StatusOK, GenerateResponse{State: state, Colors: colors})
}

// handleValidate checks instance shape.
func (s *Server) handleValidate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if len(req.Colors) == 0 {
		c.JSON(http.StatusOK, ValidateResponse{
			Valid:   true,
			Message: "state has the right shape (no colors given for a full check)",
		})
		return
	}
	if err := puzzle.Validate(req.State, req.Colors); err != nil {
		c.JSON(http.StatusOK, ValidateResponse{Valid: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ValidateResponse{Valid: true, Message: "instance is valid"})
}

// handleSolve runs the requested engine and reports moves plus statistics.
func (s *Server) handleSolve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	if len(req.Colors) > 0 {
		if err := puzzle.Validate(req.State, req.Colors); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_INSTANCE"})
			return
		}
	}

	limits := solver.Limits{MaxExpansions: req.MaxExpansions}

	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmBacktracking
	}

	started := time.Now()
	var res solver.Result
	switch algorithm {
	case AlgorithmBacktracking:
		res = solver.SolveBacktracking(req.State, limits)
	case AlgorithmBranchAndBound:
		res = solver.SolveBranchAndBound(req.State, limits)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("unknown algorithm %q", algorithm),
			Code:  "UNKNOWN_ALGORITHM",
		})
		return
	}
	elapsed := time.Since(started)

	s.log.Info("solve finished",
		zap.String("algorithm", algorithm),
		zap.String("outcome", res.Outcome.String()),
		zap.Int("expanded", res.Stats.Expanded),
		zap.Duration("elapsed", elapsed))

	resp := SolveResponse{
		Resolved:     res.Outcome == solver.Solved,
		Stats:        res.Stats,
		LimitReached: res.Outcome == solver.Inconclusive,
	}
	switch res.Outcome {
	case solver.Solved:
		resp.Moves = res.Moves
		resp.NumMoves = len(res.Moves)
		resp.Message = fmt.Sprintf("solution found in %d moves", len(res.Moves))
	case solver.Inconclusive:
		resp.Message = fmt.Sprintf("no solution found within the expansion budget (expanded %d)", res.Stats.Expanded)
	default:
		resp.Message = fmt.Sprintf("no solution exists (search exhausted after %d expansions)", res.Stats.Expanded)
	}
	c.JSON(http.StatusOK, resp)
}
