package main

import (
	"github.com/hailam/nutsort/internal/puzzle"
	"github.com/hailam/nutsort/internal/storage"
)

// openStore opens the persistent store honoring --db and --no-db. It returns
// a nil store when persistence is disabled.
func openStore() (*storage.Store, error) {
	if noDB {
		return nil, nil
	}
	if dbDir != "" {
		return storage.Open(dbDir)
	}
	return storage.OpenDefault()
}

// seenStoreOf returns the dedup store backing unique generation, falling back
// to memory when persistence is off.
func seenStoreOf(store *storage.Store) puzzle.SeenStore {
	if store == nil {
		return storage.NewMemStore()
	}
	return store
}
