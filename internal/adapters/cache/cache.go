// Package cache provides a bounded in-memory TTL cache for external
// lookup responses. Correctness never depends on it; a miss just means
// another network round trip.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Default cache configuration constants.
const (
	defaultMaxSize = 4096
	defaultTTL     = 5 * time.Minute
)

// entry is a single cached response in the eviction list.
type entry struct {
	key     string
	value   []byte
	expires time.Time
	next    *entry
}

// Store is a bounded key-value cache with TTL expiry and LIFO eviction.
// A single mutex guards both the map and the eviction list.
type Store struct {
	mu      sync.RWMutex
	items   map[string]*entry
	head    *entry
	maxSize int
	ttl     time.Duration
	size    atomic.Int64
	now     func() time.Time
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithMaxSize bounds how many responses are kept. Sizes <= 0 keep the
// default.
func WithMaxSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// WithTTL sets how long a response stays fresh.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// withClock overrides the time source in tests.
func withClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store with configuration options.
func New(opts ...Option) *Store {
	s := &Store{
		maxSize: defaultMaxSize,
		ttl:     defaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = make(map[string]*entry)
	return s
}

// Get returns the cached value for key, or false when absent or expired.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.expires) {
		s.mu.Lock()
		s.remove(key)
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, evicting the oldest entry when full.
// Overwriting an existing key refreshes its TTL.
func (s *Store) Set(_ context.Context, key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[key]; ok {
		existing.value = value
		existing.expires = s.now().Add(s.ttl)
		return
	}
	if len(s.items) >= s.maxSize {
		s.evictTail()
	}
	e := &entry{
		key:     key,
		value:   value,
		expires: s.now().Add(s.ttl),
		next:    s.head,
	}
	s.head = e
	s.items[key] = e
	s.size.Add(1)
}

// Size returns the current number of cached entries.
func (s *Store) Size() int64 {
	return s.size.Load()
}

// remove deletes key from the map and the eviction list.
// Must be called with s.mu held for writing.
func (s *Store) remove(key string) {
	e, ok := s.items[key]
	if !ok {
		return
	}
	delete(s.items, key)
	if s.head == e {
		s.head = e.next
	} else {
		for cur := s.head; cur != nil; cur = cur.next {
			if cur.next == e {
				cur.next = e.next
				break
			}
		}
	}
	s.size.Add(-1)
}

// evictTail drops the least recently added entry.
// Must be called with s.mu held for writing.
func (s *Store) evictTail() {
	if s.head == nil {
		return
	}
	if s.head.next == nil {
		delete(s.items, s.head.key)
		s.head = nil
		s.size.Add(-1)
		return
	}
	prev := s.head
	for prev.next.next != nil {
		prev = prev.next
	}
	delete(s.items, prev.next.key)
	prev.next = nil
	s.size.Add(-1)
}
