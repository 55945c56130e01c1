// ABOUTME: In-memory Store used by tests and throwaway sessions.
// ABOUTME: Supports injected read and write failures to exercise degraded paths.
package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps values in a map.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool

	// FailGet and FailSet, when non-nil, are returned by the matching operation.
	FailGet error
	FailSet error
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	if m.FailGet != nil {
		return "", false, m.FailGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailSet != nil {
		return m.FailSet
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailSet != nil {
		return m.FailSet
	}
	delete(m.data, key)
	return nil
}

// Close marks the store closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Len reports how many keys are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
