// manager.go
package simpleprefs

import (
	"errors"
	"strings"
	"sync"
	"time"
)

const defaultCacheTTL = 24 * time.Hour

// Manager resolves Store handles over a shared storage backend and optional cache.
// It implements StoreContext, so generated accessor types accept it directly.
// A Manager is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	stores map[string]*Store
}

// New creates a Manager configured by opts.
func New(opts ...Option) *Manager {
	cfg := &Config{
		logger:       NewDefaultLogger(),
		defaultStore: DefaultStoreName,
		cacheTTL:     defaultCacheTTL,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Manager{
		config: cfg,
		stores: make(map[string]*Store),
	}
}

// DefaultStore returns the process default store.
func (m *Manager) DefaultStore() (*Store, error) {
	return m.NamedStore(m.config.defaultStore)
}

// NamedStore returns the store called name. Handles are created once and reused,
// so repeated calls with the same name return the same *Store.
func (m *Manager) NamedStore(name string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidStoreName
	}
	if m.config.storage == nil {
		return nil, ErrStorageUnavailable
	}

	m.mu.RLock()
	s, ok := m.stores[name]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[name]; ok {
		return s, nil
	}
	s = &Store{name: name, config: m.config}
	m.stores[name] = s
	m.config.logger.Debug("Opened preference store", "store", name)
	return s, nil
}

// Close releases the storage backend and the cache, if any.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if m.config.cache != nil {
		if err := m.config.cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.config.storage != nil {
		if err := m.config.storage.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.stores = make(map[string]*Store)
	return errors.Join(errs...)
}
