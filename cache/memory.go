package cache

import "sync"

// Store is an unbounded in-memory key/value namespace.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: Get never errors; it returns (zero, false) on miss.
// - Lifetime: entries are never evicted or expired.
type Store[K comparable, V any] struct {
	name string

	mu      sync.RWMutex
	entries map[K]V

	loads loadGroup
}

// NewStore creates an empty store. The name labels the namespace in logs
// and metrics.
func NewStore[K comparable, V any](name string) *Store[K, V] {
	return &Store[K, V]{
		name:    name,
		entries: make(map[K]V),
	}
}

// Name returns the namespace label.
func (s *Store[K, V]) Name() string {
	return s.name
}

// Get retrieves a value. Returns (zero, false) on miss.
// A stored zero value (nil slice, empty list) is a hit.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	return v, ok
}

// Set stores value under key, replacing any previous entry.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}

// Len returns the number of entries.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
