package storage

import "sync"

// MemStore is an in-memory SeenStore for tests and for running the server
// without a database directory. Safe for concurrent use.
type MemStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{keys: make(map[string]struct{})}
}

// Contains reports whether the key was inserted before.
func (m *MemStore) Contains(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[key]
	return ok, nil
}

// Insert records the key.
func (m *MemStore) Insert(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = struct{}{}
	return nil
}

// Len returns how many keys are stored.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys)
}
