// Package store provides the key-value stores that hold roadmap progress.
package store

import "sync"

// Memory is an in-process Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty Memory store, optionally seeded with pairs.
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{data: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.data[k] = v
	}
	return m
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
