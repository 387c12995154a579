package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory variable store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]map[string]Variable // namespace -> name -> variable
	closed bool
}

// NewMemoryStore creates a new in-memory variable store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]Variable),
	}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, namespace, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	v, ok := m.data[namespace][name]
	if !ok {
		return "", ErrNotFound
	}
	return v.Value, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, namespace, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	ns := m.data[namespace]
	if ns == nil {
		ns = make(map[string]Variable)
		m.data[namespace] = ns
	}

	ns[name] = Variable{
		Namespace: namespace,
		Name:      name,
		Value:     value,
		Version:   ns[name].Version + 1,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context, namespace string) ([]Variable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	ns := m.data[namespace]
	vars := make([]Variable, 0, len(ns))
	for _, v := range ns {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, namespace, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if ns, ok := m.data[namespace]; ok {
		delete(ns, name)
	}
	return nil
}

// DeleteNamespace implements Store.
func (m *MemoryStore) DeleteNamespace(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, namespace)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of variables across all namespaces.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, ns := range m.data {
		count += len(ns)
	}
	return count
}
