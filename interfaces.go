// Package simpleprefs defines interfaces for storage, caching, encryption and store resolution.
package simpleprefs

import (
	"context"
	"time"
)

// Storage defines the methods required for a storage backend.
// Entries are addressed by store name and key; Get returns ErrNotFound for a missing entry.
// Clear must remove every entry of one store in a single atomic step.
type Storage interface {
	Get(ctx context.Context, store, key string) (*Entry, error)
	Set(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, store, key string) error
	GetAll(ctx context.Context, store string) (map[string]*Entry, error)
	Clear(ctx context.Context, store string) error
	Close() error
}

// Cache defines the methods required for a caching backend.
// Get returns ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// EncryptionManager encrypts and decrypts encoded values.
type EncryptionManager interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// StoreContext resolves store handles for generated accessor types.
// DefaultStore returns the process default store; NamedStore returns the store with the given name.
type StoreContext interface {
	DefaultStore() (*Store, error)
	NamedStore(name string) (*Store, error)
}
