package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyStats   = "stats"
	seenPrefix = "seen:"
)

// SolveStats aggregates solve outcomes across runs.
type SolveStats struct {
	TotalRuns   int                       `json:"total_runs"`
	Solved      int                       `json:"solved"`
	ByAlgorithm map[string]AlgorithmStats `json:"by_algorithm"`
	LastRun     time.Time                 `json:"last_run"`
}

// AlgorithmStats aggregates per-engine counters.
type AlgorithmStats struct {
	Runs          int `json:"runs"`
	Solved        int `json:"solved"`
	TotalMoves    int `json:"total_moves"`
	TotalExpanded int `json:"total_expanded"`
}

// NewSolveStats returns empty solve statistics.
func NewSolveStats() *SolveStats {
	return &SolveStats{ByAlgorithm: make(map[string]AlgorithmStats)}
}

// SolveRecord describes one completed solve invocation.
type SolveRecord struct {
	Algorithm string
	Solved    bool
	Moves     int
	Expanded  int
}

// Store wraps BadgerDB for persistent storage. It implements the
// puzzle.SeenStore interface used by unique-instance generation.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Contains reports whether an instance key was generated before.
func (s *Store) Contains(key string) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(seenPrefix + key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Insert marks an instance key as generated.
func (s *Store) Insert(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(seenPrefix+key), []byte{1})
	})
}

// SeenCount returns how many instance keys are stored.
func (s *Store) SeenCount() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(seenPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// LoadStats loads the aggregate solve statistics, empty if none stored.
func (s *Store) LoadStats() (*SolveStats, error) {
	stats := NewSolveStats()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

// SaveStats saves the aggregate solve statistics.
func (s *Store) SaveStats(stats *SolveStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// RecordSolve folds one solve invocation into the aggregate statistics.
func (s *Store) RecordSolve(rec SolveRecord) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.TotalRuns++
	stats.LastRun = time.Now()

	alg := stats.ByAlgorithm[rec.Algorithm]
	alg.Runs++
	alg.TotalExpanded += rec.Expanded
	if rec.Solved {
		stats.Solved++
		alg.Solved++
		alg.TotalMoves += rec.Moves
	}
	stats.ByAlgorithm[rec.Algorithm] = alg

	return s.SaveStats(stats)
}

// SolveRate returns the fraction of runs that were solved, as a percentage.
func (st *SolveStats) SolveRate() float64 {
	if st.TotalRuns == 0 {
		return 0
	}
	return float64(st.Solved) / float64(st.TotalRuns) * 100
}
