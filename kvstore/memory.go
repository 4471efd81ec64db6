package kvstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

var _ Backend = (*InMemory)(nil)

// InMemory is a map-backed Backend, safe for concurrent use
type InMemory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemory creates an empty in-memory backend
func NewInMemory() *InMemory {
	return &InMemory{
		values: make(map[string]string),
	}
}

func (m *InMemory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *InMemory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *InMemory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *InMemory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *InMemory) Flush(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string)
	return nil
}

func (m *InMemory) Close() error {
	return nil
}
