// Package storage provides the client-scoped key/value stores that back
// login sessions and provider settings.
package storage

import (
	"sync"
)

// Store is a string key/value store
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// MemoryStore is an ephemeral Store that lives as long as the process
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// scoped prefixes every key with a client scope
type scoped struct {
	store  Store
	prefix string
}

// Scoped returns a view of s whose keys are private to scope.
func Scoped(s Store, scope string) Store {
	return &scoped{store: s, prefix: scope + "/"}
}

func (s *scoped) Get(key string) (string, bool, error) { return s.store.Get(s.prefix + key) }
func (s *scoped) Set(key, value string) error         { return s.store.Set(s.prefix+key, value) }
func (s *scoped) Remove(key string) error             { return s.store.Remove(s.prefix + key) }
