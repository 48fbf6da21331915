package storage

import (
	"context"
	"sync"

	"github.com/CreativeUnicorns/simpleprefs"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// This is useful for testing or simple applications where persistence is not required.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]map[string]*simpleprefs.Entry // store -> key -> Entry
}

// NewMemoryStorage creates a new instance of MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]map[string]*simpleprefs.Entry),
	}
}

// Get retrieves the entry stored under key.
// It returns simpleprefs.ErrNotFound if the entry does not exist.
func (s *MemoryStorage) Get(_ context.Context, store, key string) (*simpleprefs.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[store][key]
	if !ok {
		return nil, simpleprefs.ErrNotFound
	}

	// Return a copy to prevent modification of the stored entry through the pointer
	cp := *e
	return &cp, nil
}

// Set stores an entry, replacing any previous value for the same store and key.
func (s *MemoryStorage) Set(_ context.Context, e *simpleprefs.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e.Store]; !ok {
		s.entries[e.Store] = make(map[string]*simpleprefs.Entry)
	}
	cp := *e
	s.entries[e.Store][e.Key] = &cp
	return nil
}

// Delete removes an entry. It returns simpleprefs.ErrNotFound if the entry does not exist.
func (s *MemoryStorage) Delete(_ context.Context, store, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.entries[store]
	if !ok {
		return simpleprefs.ErrNotFound
	}
	if _, ok := entries[key]; !ok {
		return simpleprefs.ErrNotFound
	}

	delete(entries, key)
	if len(entries) == 0 {
		delete(s.entries, store)
	}
	return nil
}

// GetAll retrieves all entries of a store.
func (s *MemoryStorage) GetAll(_ context.Context, store string) (map[string]*simpleprefs.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*simpleprefs.Entry, len(s.entries[store]))
	for k, v := range s.entries[store] {
		cp := *v
		out[k] = &cp
	}
	return out, nil
}

// Clear removes every entry of a store.
func (s *MemoryStorage) Clear(_ context.Context, store string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, store)
	return nil
}

// Close is a no-op for MemoryStorage as there are no external resources to release.
func (s *MemoryStorage) Close() error {
	return nil
}
