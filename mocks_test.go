package simpleprefs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockStorage implements the Storage interface for testing
type MockStorage struct {
	mu        sync.RWMutex
	data      map[string]map[string]*Entry
	closed    bool
	gets      int
	forcedErr error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		data: make(map[string]map[string]*Entry),
	}
}

// FailWith makes every subsequent call return err.
func (m *MockStorage) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forcedErr = err
}

// Gets returns how many times Get reached the storage.
func (m *MockStorage) Gets() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gets
}

func (m *MockStorage) check() error {
	if m.closed {
		return ErrStorageUnavailable
	}
	return m.forcedErr
}

func (m *MockStorage) Get(ctx context.Context, store, key string) (*Entry, error) {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++

	if err := m.check(); err != nil {
		return nil, err
	}
	if e, ok := m.data[store][key]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MockStorage) Set(ctx context.Context, e *Entry) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return err
	}
	if _, ok := m.data[e.Store]; !ok {
		m.data[e.Store] = make(map[string]*Entry)
	}
	cp := *e
	m.data[e.Store][e.Key] = &cp
	return nil
}

func (m *MockStorage) Delete(ctx context.Context, store, key string) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return err
	}
	if _, ok := m.data[store][key]; ok {
		delete(m.data[store], key)
		return nil
	}
	return ErrNotFound
}

func (m *MockStorage) GetAll(ctx context.Context, store string) (map[string]*Entry, error) {
	_, _ = ctx.Deadline()
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.check(); err != nil {
		return nil, err
	}
	out := make(map[string]*Entry, len(m.data[store]))
	for k, e := range m.data[store] {
		cp := *e
		out[k] = &cp
	}
	return out, nil
}

func (m *MockStorage) Clear(ctx context.Context, store string) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(); err != nil {
		return err
	}
	delete(m.data, store)
	return nil
}

func (m *MockStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// raw returns the stored entry without copying, for assertions on what reached storage.
func (m *MockStorage) raw(store, key string) (*Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[store][key]
	return e, ok
}

// MockCache implements the Cache interface for testing
type MockCache struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMockCache creates a new MockCache for testing.
func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	_, _ = ctx.Deadline()
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrCacheUnavailable
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, _ = ctx.Deadline()
	_ = ttl // TTL is ignored in this mock implementation

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrCacheUnavailable
	}
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrCacheUnavailable
	}
	if _, ok := m.data[key]; ok {
		delete(m.data, key)
		return nil
	}
	return ErrNotFound
}

func (m *MockCache) DeletePrefix(ctx context.Context, prefix string) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrCacheUnavailable
	}
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *MockCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockCache) has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (m *MockLogger) Debug(msg string, args ...any) {
	m.record("DEBUG", msg, args...)
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.record("INFO", msg, args...)
}

func (m *MockLogger) Warn(msg string, args ...any) {
	m.record("WARN", msg, args...)
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.record("ERROR", msg, args...)
}

func (m *MockLogger) SetLevel(level LogLevel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, fmt.Sprintf("SET_LEVEL: %v", level))
}

func (m *MockLogger) record(level, msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, formatMessage(level, msg, args...))
}

func formatMessage(level, msg string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf("%s: %s %v", level, msg, args)
	}
	return fmt.Sprintf("%s: %s", level, msg)
}
