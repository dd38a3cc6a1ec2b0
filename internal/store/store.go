package store

import (
	"sync"
	"time"

	"tcp-cache/internal/metrics"
)

// Store is a concurrency-safe in-memory key–value store.
//
// Design principles:
// - Safe for concurrent access using RWMutex
// - A later Set fully replaces the previous entry (value and TTL together)
// - TTL expiration handled using wall-clock time (time.Now)
//
// Expired entries are never returned by reads: Get removes them lazily,
// and RemoveExpired sweeps the rest in the background.
type Store struct {
	mu      sync.RWMutex
	data    map[string]Entry
	metrics *metrics.Registry
}

// NewStore initializes and returns a new Store.
func NewStore(metricsRegistry *metrics.Registry) *Store {
	return &Store{
		data:    make(map[string]Entry),
		metrics: metricsRegistry,
	}
}

// Set inserts or replaces the entry for a key.
//
// Replacement is atomic: no reader ever observes the old value with the
// new expiry or vice versa.
func (s *Store) Set(key string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Inc(metrics.CacheSetsTotal)

	if _, exists := s.data[key]; !exists {
		s.metrics.Inc(metrics.CacheKeysTotal)
	}

	s.data[key] = entry
}

// Get retrieves a value from the store.
//
// Behavior:
// - Returns (value, true) if key exists and is not expired
// - If the key is expired, it is deleted and treated as missing
func (s *Store) Get(key string) (string, bool) {
	s.metrics.Inc(metrics.CacheGetsTotal)

	s.mu.RLock()
	entry, exists := s.data[key]
	s.mu.RUnlock()

	if !exists {
		s.metrics.Inc(metrics.CacheMissesTotal)
		return "", false
	}

	if !entry.IsExpired(time.Now()) {
		return entry.Value, true
	}

	s.mu.Lock()
	// Re-check under the write lock: a concurrent Set may have replaced
	// the entry between the read and here, and that one must survive.
	entry, exists = s.data[key]
	if exists && entry.IsExpired(time.Now()) {
		delete(s.data, key)
		s.mu.Unlock()

		s.metrics.Inc(metrics.CacheExpiredTotal)
		s.metrics.Add(metrics.CacheKeysTotal, -1)
		s.metrics.Inc(metrics.CacheMissesTotal)

		return "", false
	}
	s.mu.Unlock()

	if !exists {
		s.metrics.Inc(metrics.CacheMissesTotal)
		return "", false
	}
	return entry.Value, true
}

// Remove deletes a key from the store.
//
// Reports whether the key was physically present, regardless of its
// expiry state.
func (s *Store) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	s.metrics.Add(metrics.CacheKeysTotal, -1)
	return true
}

// Len returns the number of physically present keys, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// RemoveExpired removes all expired keys from the store.
//
// This is used by the background TTL cleaner. The lock is held only for
// the duration of a single scan, never across ticks.
func (s *Store) RemoveExpired() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range s.data {
		if v.IsExpired(now) {
			delete(s.data, k)
			removed++
		}
	}

	if removed > 0 {
		s.metrics.Add(metrics.CacheExpiredTotal, int64(removed))
		s.metrics.Add(metrics.CacheKeysTotal, -int64(removed))
	}

	return removed
}
