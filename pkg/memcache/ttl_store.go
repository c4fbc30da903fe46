// Package mem is a small in-process key/value store with per-entry expiry.
package mem

import (
	"sort"
	"sync"
	"time"
)

type Store[V any] interface {
	Set(key string, value V, ttl time.Duration)

	// Get returns the value for key if present and not expired.
	Get(key string) (V, bool)

	// Values returns a snapshot of every live entry, in insertion order.
	Values() []V

	Len() int
}

type entry[V any] struct {
	value     V
	seq       uint64
	expiresAt time.Time
}

type TTLStore[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	seq  uint64
	now  func() time.Time
}

func NewTTLStore[V any]() *TTLStore[V] {
	return &TTLStore[V]{
		data: make(map[string]entry[V]),
		now:  time.Now,
	}
}

// Set stores value under key. A non-positive ttl keeps the entry until the process exits.
func (s *TTLStore[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.seq++
	e := entry[V]{value: value, seq: s.seq}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.data[key] = e
}

func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.expired(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *TTLStore[V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	live := make([]entry[V], 0, len(s.data))
	for _, e := range s.data {
		if !s.expired(e) {
			live = append(live, e)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].seq < live[j].seq })

	values := make([]V, len(live))
	for i, e := range live {
		values[i] = e.value
	}
	return values
}

func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.data {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

func (s *TTLStore[V]) expired(e entry[V]) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}

// sweepLocked drops expired entries; callers hold the write lock.
func (s *TTLStore[V]) sweepLocked() {
	for k, e := range s.data {
		if s.expired(e) {
			delete(s.data, k)
		}
	}
}
