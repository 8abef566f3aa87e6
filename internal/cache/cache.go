// Package cache provides the shared key/value cache used to bound repeated
// network lookups. Values are opaque bytes; callers encode them.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a TTL key/value store safe for concurrent use. Writes are
// idempotent: setting the same key twice with the same value is harmless.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Clock returns the current time.
type Clock func() time.Time

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process Cache. Expired entries are treated as missing
// and evicted on the next read of the same key.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     Clock
}

// NewMemory creates a Memory cache. A nil clock uses time.Now.
func NewMemory(clock Clock) *Memory {
	if clock == nil {
		clock = time.Now
	}
	return &Memory{
		entries: make(map[string]entry),
		now:     clock,
	}
}

// Get returns a copy of the cached value for key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expires) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if cur, ok := m.entries[key]; ok && !m.now().Before(cur.expires) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

// Set stores value under key for ttl. A non-positive ttl is a no-op.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	v := make([]byte, len(value))
	copy(v, value)

	m.mu.Lock()
	m.entries[key] = entry{value: v, expires: m.now().Add(ttl)}
	m.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
