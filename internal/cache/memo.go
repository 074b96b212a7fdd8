// Package cache provides a small get-or-compute memo with FIFO eviction.
package cache

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Key is the set of key types a Memo accepts. Their fmt forms are distinct,
// which the single-flight group relies on.
type Key interface {
	~string | ~int | ~int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries   int    `json:"entries"`
	Capacity  int    `json:"capacity"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
}

// Memo memoizes computed values by key.
//
// With a positive capacity the oldest inserted key is evicted when a new key
// would exceed it; reads do not refresh a key's position. A capacity of zero
// or less means unbounded. Concurrent misses for the same key run compute
// once and share the result. Failed computations are not stored. Every call
// counts as exactly one hit or miss.
type Memo[K Key, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]V
	order    []K

	flight singleflight.Group

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a Memo holding at most capacity entries.
func New[K Key, V any](capacity int) *Memo[K, V] {
	return &Memo[K, V]{
		capacity: capacity,
		entries:  make(map[K]V),
	}
}

// Get returns the cached value for key, if any.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}

// GetOrCompute returns the cached value for key or stores the result of
// compute. Values must be treated as immutable by callers.
func (m *Memo[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := m.Get(key); ok {
		m.hits.Add(1)
		return v, nil
	}

	ran := false
	res, err, _ := m.flight.Do(fmt.Sprint(key), func() (any, error) {
		ran = true
		// A previous flight may have stored the key after our first check.
		if v, ok := m.Get(key); ok {
			m.hits.Add(1)
			return v, nil
		}

		m.misses.Add(1)
		v, err := compute()
		if err != nil {
			return v, err
		}
		m.put(key, v)
		return v, nil
	})
	// Waiters on another caller's flight count like a lookup of its result.
	if !ran {
		if err != nil {
			m.misses.Add(1)
		} else {
			m.hits.Add(1)
		}
	}
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}

func (m *Memo[K, V]) put(key K, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; exists {
		m.entries[key] = v
		return
	}

	if m.capacity > 0 && len(m.entries) >= m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
		m.evictions.Add(1)
	}

	m.entries[key] = v
	m.order = append(m.order, key)
}

// Len returns the number of cached entries.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Keys returns the cached keys, oldest first.
func (m *Memo[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]K, len(m.order))
	copy(keys, m.order)
	return keys
}

// Stats returns the current counters.
func (m *Memo[K, V]) Stats() Stats {
	return Stats{
		Entries:   m.Len(),
		Capacity:  m.capacity,
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
	}
}
