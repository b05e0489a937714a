// Package experiment runs batch comparisons of the two solvers over seeded
// instance batteries and exports the results as CSV, a text summary, and
// PNG charts.
package experiment

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hailam/nutsort/internal/puzzle"
	"github.com/hailam/nutsort/internal/solver"
)

// Case categories. The battery mixes solvable shuffled cases per color
// count, cases mutated into insolubility, and deep many-move shuffles.
const (
	CategorySolvable  = "solvable"
	CategoryInsoluble = "insoluble"
	CategoryDeep      = "deep"
)

// Config controls case generation and solving for one batch.
type Config struct {
	// ColorCounts lists the alphabet sizes of the solvable category.
	ColorCounts []int
	// CasesPerCount is how many solvable cases each alphabet size gets.
	CasesPerCount int
	// ShuffleMin and ShuffleMax bound the random-walk length used to
	// scramble a solved configuration.
	ShuffleMin int
	ShuffleMax int
	// SeedBase makes the solvable battery reproducible.
	SeedBase int64

	// Insoluble cases: shuffled instances with one unit recolored so a
	// color exceeds peg capacity. They exercise infeasibility pruning and
	// search exhaustion. Alphabet sizes cycle through InsolubleColorCounts.
	InsolubleCases       int
	InsolubleColorCounts []int
	InsolubleShuffleMin  int
	InsolubleShuffleMax  int
	InsolubleSeedBase    int64

	// Deep cases: one large alphabet scrambled by a long walk.
	DeepCases      int
	DeepColors     int
	DeepShuffleMin int
	DeepShuffleMax int
	DeepSeedBase   int64

	// MaxExpansions is the per-solve budget.
	MaxExpansions int
}

// DefaultConfig mirrors the standard battery: ten solvable cases each of
// three, four and five colors, ten insoluble mutations, and ten deep
// five-color shuffles.
func DefaultConfig() Config {
	return Config{
		ColorCounts:   []int{3, 4, 5},
		CasesPerCount: 10,
		ShuffleMin:    12,
		ShuffleMax:    24,
		SeedBase:      202501,

		InsolubleCases:       10,
		InsolubleColorCounts: []int{3, 4, 5},
		InsolubleShuffleMin:  10,
		InsolubleShuffleMax:  18,
		InsolubleSeedBase:    302501,

		DeepCases:      10,
		DeepColors:     5,
		DeepShuffleMin: 35,
		DeepShuffleMax: 55,
		DeepSeedBase:   402501,

		MaxExpansions: 1_000_000,
	}
}

// Case is one generated instance of the battery.
type Case struct {
	ID         string
	Category   string
	Colors     []puzzle.Color
	State      puzzle.State
	ShuffleLen int
	Seed       int64
	// Solvable is the expected verdict: false only for the insoluble
	// category.
	Solvable bool
}

// EngineRun is the outcome of one engine on one case.
type EngineRun struct {
	Algorithm string
	Outcome   solver.Outcome
	Moves     int
	Stats     solver.Stats
	Elapsed   time.Duration
}

// CaseResult pairs a case with the runs of both engines.
type CaseResult struct {
	Case Case
	Runs []EngineRun
}

// Report is the full output of one batch.
type Report struct {
	RunID     string
	StartedAt time.Time
	Config    Config
	Results   []CaseResult
}

// Engine identifiers used in reports and CSV rows.
const (
	EngineBacktracking   = solver.AlgorithmBacktracking
	EngineBranchAndBound = solver.AlgorithmBranchAndBound
)

// GenerateCases builds the seeded three-category battery. Duplicate states
// across the whole battery are skipped by lengthening the shuffle walk, so
// every case is distinct.
func GenerateCases(cfg Config) ([]Case, error) {
	seen := make(map[string]struct{})

	cases, err := solvableCases(cfg, seen)
	if err != nil {
		return nil, err
	}
	insoluble, err := insolubleCases(cfg, seen)
	if err != nil {
		return nil, err
	}
	cases = append(cases, insoluble...)
	deep, err := deepCases(cfg, seen)
	if err != nil {
		return nil, err
	}
	return append(cases, deep...), nil
}

func solvableCases(cfg Config, seen map[string]struct{}) ([]Case, error) {
	var cases []Case
	for colorIdx, numColors := range cfg.ColorCounts {
		colors, err := puzzle.Palette(numColors)
		if err != nil {
			return nil, fmt.Errorf("solvable battery with %d colors: %w", numColors, err)
		}
		for idx := 0; idx < cfg.CasesPerCount; idx++ {
			seed := cfg.SeedBase + int64(colorIdx)*1000 + int64(idx)
			rng := rand.New(rand.NewSource(seed))
			shuffleLen := shuffleLenIn(rng, cfg.ShuffleMin, cfg.ShuffleMax)

			state, shuffleLen := unseenShuffle(colors, rng, shuffleLen, seen, nil)
			cases = append(cases, Case{
				ID:         fmt.Sprintf("S%dc_%02d", numColors, idx),
				Category:   CategorySolvable,
				Colors:     colors,
				State:      state,
				ShuffleLen: shuffleLen,
				Seed:       seed,
				Solvable:   true,
			})
		}
	}
	return cases, nil
}

func insolubleCases(cfg Config, seen map[string]struct{}) ([]Case, error) {
	counts := cfg.InsolubleColorCounts
	if len(counts) == 0 {
		counts = cfg.ColorCounts
	}
	var cases []Case
	for idx := 0; idx < cfg.InsolubleCases; idx++ {
		numColors := counts[idx%len(counts)]
		colors, err := puzzle.Palette(numColors)
		if err != nil {
			return nil, fmt.Errorf("insoluble battery with %d colors: %w", numColors, err)
		}
		seed := cfg.InsolubleSeedBase + int64(idx)
		rng := rand.New(rand.NewSource(seed))
		shuffleLen := shuffleLenIn(rng, cfg.InsolubleShuffleMin, cfg.InsolubleShuffleMax)

		state, shuffleLen := unseenShuffle(colors, rng, shuffleLen, seen, mutateInsoluble)
		cases = append(cases, Case{
			ID:         fmt.Sprintf("I%dc_%02d", numColors, idx),
			Category:   CategoryInsoluble,
			Colors:     colors,
			State:      state,
			ShuffleLen: shuffleLen,
			Seed:       seed,
			Solvable:   false,
		})
	}
	return cases, nil
}

func deepCases(cfg Config, seen map[string]struct{}) ([]Case, error) {
	if cfg.DeepCases == 0 {
		return nil, nil
	}
	colors, err := puzzle.Palette(cfg.DeepColors)
	if err != nil {
		return nil, fmt.Errorf("deep battery with %d colors: %w", cfg.DeepColors, err)
	}
	var cases []Case
	for idx := 0; idx < cfg.DeepCases; idx++ {
		seed := cfg.DeepSeedBase + int64(idx)
		rng := rand.New(rand.NewSource(seed))
		shuffleLen := shuffleLenIn(rng, cfg.DeepShuffleMin, cfg.DeepShuffleMax)

		state, shuffleLen := unseenShuffle(colors, rng, shuffleLen, seen, nil)
		cases = append(cases, Case{
			ID:         fmt.Sprintf("P%dc_%02d", cfg.DeepColors, idx),
			Category:   CategoryDeep,
			Colors:     colors,
			State:      state,
			ShuffleLen: shuffleLen,
			Seed:       seed,
			Solvable:   true,
		})
	}
	return cases, nil
}

func shuffleLenIn(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// unseenShuffle draws shuffled states (optionally post-processed by mutate)
// until one is new to the battery, lengthening the walk on collisions.
func unseenShuffle(colors []puzzle.Color, rng *rand.Rand, shuffleLen int,
	seen map[string]struct{}, mutate func(puzzle.State) puzzle.State) (puzzle.State, int) {
	for {
		state := puzzle.ShuffledState(colors, rng, shuffleLen)
		if mutate != nil {
			state = mutate(state)
		}
		if _, dup := seen[state.Key()]; !dup {
			seen[state.Key()] = struct{}{}
			return state, shuffleLen
		}
		shuffleLen++
	}
}

// mutateInsoluble recolors one unit to the bottom color of the first peg, so
// that color ends up with Capacity+1 units and the instance can never be
// solved. The buffer (last peg) is left alone.
func mutateInsoluble(s puzzle.State) puzzle.State {
	if len(s) < 2 || len(s[0]) == 0 {
		return s
	}
	target := s[0][0]

	next := make(puzzle.State, len(s))
	for i, p := range s {
		cp := make(puzzle.Stack, len(p))
		copy(cp, p)
		next[i] = cp
	}
	for _, p := range next[:len(next)-1] {
		for idx, c := range p {
			if c != target {
				p[idx] = target
				return next
			}
		}
	}
	// Every non-buffer peg already monochrome in target: force the change.
	if len(next[1]) > 0 {
		next[1][0] = target
	}
	return next
}

// Run generates the battery and runs both engines on every case. A nil
// logger disables progress logging.
func Run(cfg Config, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}

	cases, err := GenerateCases(cfg)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Config:    cfg,
	}
	limits := solver.Limits{MaxExpansions: cfg.MaxExpansions}

	for _, cs := range cases {
		log.Info("running case",
			zap.String("case", cs.ID),
			zap.String("category", cs.Category),
			zap.Int("colors", len(cs.Colors)),
			zap.Int("shuffle_len", cs.ShuffleLen))

		runs := []EngineRun{
			runEngine(EngineBacktracking, cs.State, limits),
			runEngine(EngineBranchAndBound, cs.State, limits),
		}
		report.Results = append(report.Results, CaseResult{Case: cs, Runs: runs})
	}
	return report, nil
}

func runEngine(algorithm string, state puzzle.State, limits solver.Limits) EngineRun {
	started := time.Now()
	var res solver.Result
	if algorithm == EngineBranchAndBound {
		res = solver.SolveBranchAndBound(state, limits)
	} else {
		res = solver.SolveBacktracking(state, limits)
	}
	return EngineRun{
		Algorithm: algorithm,
		Outcome:   res.Outcome,
		Moves:     len(res.Moves),
		Stats:     res.Stats,
		Elapsed:   time.Since(started),
	}
}

// aggregate holds per-group means.
type aggregate struct {
	runs     int
	solved   int
	moves    int
	expanded int
	pruned   int
	elapsed  time.Duration
}

func (a *aggregate) add(run EngineRun) {
	a.runs++
	a.expanded += run.Stats.Expanded
	a.pruned += run.Stats.Pruned
	a.elapsed += run.Elapsed
	if run.Outcome == solver.Solved {
		a.solved++
		a.moves += run.Moves
	}
}

func (a *aggregate) meanElapsed() time.Duration {
	return (a.elapsed / time.Duration(a.runs)).Round(time.Microsecond)
}

// Summary renders per-(category, color count) means for both engines.
func (r *Report) Summary() string {
	type groupKey struct {
		category  string
		colors    int
		algorithm string
	}
	groups := make(map[groupKey]*aggregate)
	for _, cr := range r.Results {
		for _, run := range cr.Runs {
			k := groupKey{category: cr.Case.Category, colors: len(cr.Case.Colors), algorithm: run.Algorithm}
			agg := groups[k]
			if agg == nil {
				agg = &aggregate{}
				groups[k] = agg
			}
			agg.add(run)
		}
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].category != keys[b].category {
			return keys[a].category < keys[b].category
		}
		if keys[a].colors != keys[b].colors {
			return keys[a].colors < keys[b].colors
		}
		return keys[a].algorithm < keys[b].algorithm
	})

	var b strings.Builder
	fmt.Fprintf(&b, "batch %s: %d cases\n", r.RunID, len(r.Results))
	for _, k := range keys {
		agg := groups[k]
		meanMoves := 0.0
		if agg.solved > 0 {
			meanMoves = float64(agg.moves) / float64(agg.solved)
		}
		fmt.Fprintf(&b, "%-9s %d colors / %-16s solved %d/%d  mean moves %.1f  mean expanded %.0f  mean pruned %.0f  mean time %s\n",
			k.category, k.colors, k.algorithm,
			agg.solved, agg.runs,
			meanMoves,
			float64(agg.expanded)/float64(agg.runs),
			float64(agg.pruned)/float64(agg.runs),
			agg.meanElapsed())
	}
	return b.String()
}

// meanExpanded returns mean expansions per (colors, algorithm) over the
// solvable category, used by the per-color chart.
func (r *Report) meanExpanded() map[int]map[string]float64 {
	sums := make(map[int]map[string]*aggregate)
	for _, cr := range r.Results {
		if cr.Case.Category != CategorySolvable {
			continue
		}
		colors := len(cr.Case.Colors)
		if sums[colors] == nil {
			sums[colors] = make(map[string]*aggregate)
		}
		for _, run := range cr.Runs {
			agg := sums[colors][run.Algorithm]
			if agg == nil {
				agg = &aggregate{}
				sums[colors][run.Algorithm] = agg
			}
			agg.add(run)
		}
	}
	out := make(map[int]map[string]float64, len(sums))
	for colors, byAlg := range sums {
		out[colors] = make(map[string]float64, len(byAlg))
		for alg, agg := range byAlg {
			out[colors][alg] = float64(agg.expanded) / float64(agg.runs)
		}
	}
	return out
}

// byCategory returns per-(category, algorithm) aggregates, used by the
// category chart.
func (r *Report) byCategory() map[string]map[string]*aggregate {
	out := make(map[string]map[string]*aggregate)
	for _, cr := range r.Results {
		if out[cr.Case.Category] == nil {
			out[cr.Case.Category] = make(map[string]*aggregate)
		}
		for _, run := range cr.Runs {
			agg := out[cr.Case.Category][run.Algorithm]
			if agg == nil {
				agg = &aggregate{}
				out[cr.Case.Category][run.Algorithm] = agg
			}
			agg.add(run)
		}
	}
	return out
}
