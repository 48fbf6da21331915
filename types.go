// Package simpleprefs defines the core types shared by generated accessors and storage backends.
package simpleprefs

import (
	"slices"
	"strings"
	"time"
)

// ValueType identifies one of the value kinds a store can hold.
// The set is closed: generated accessors only ever read and write these.
type ValueType string

// Supported value types.
const (
	// TypeBool is a boolean value.
	TypeBool ValueType = "bool"
	// TypeInt32 is a 32-bit signed integer.
	TypeInt32 ValueType = "int32"
	// TypeInt64 is a 64-bit signed integer.
	TypeInt64 ValueType = "int64"
	// TypeFloat32 is a 32-bit floating-point number.
	TypeFloat32 ValueType = "float32"
	// TypeString is a string.
	TypeString ValueType = "string"
	// TypeStringSet is an unordered set of strings, kept sorted and de-duplicated.
	TypeStringSet ValueType = "string_set"
)

// DefaultStoreName is the store name that stands for the process default store
// rather than a store of that name.
const DefaultStoreName = "default"

// ValueTypes returns the supported value types in a stable order.
func ValueTypes() []ValueType {
	return []ValueType{TypeBool, TypeInt32, TypeInt64, TypeFloat32, TypeString, TypeStringSet}
}

// Valid reports whether t is one of the supported value types.
func (t ValueType) Valid() bool {
	_, ok := codecs[t]
	return ok
}

// String returns the wire name of the value type.
func (t ValueType) String() string {
	return string(t)
}

// Entry is a single stored value as persisted by a Storage backend.
// Value holds the canonical string encoding for Type, possibly encrypted.
type Entry struct {
	// Store is the name of the store this entry belongs to.
	Store string `json:"store"`
	// Key is the store key.
	Key string `json:"key"`
	// Value is the encoded value.
	Value string `json:"value"`
	// Type is the value type the entry was written with.
	Type ValueType `json:"type"`
	// UpdatedAt records when the entry was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeStringSet returns a sorted copy of values with duplicates removed.
// Surrounding whitespace is kept; set members are compared verbatim.
func NormalizeStringSet(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []string{}
	}
	return out
}

// Config holds the internal configuration for a Manager instance.
// It is populated by applying functional Options when a Manager is created with New().
type Config struct {
	// storage is the persistence layer implementation.
	storage Storage
	// cache is the optional read-through cache.
	cache Cache
	// logger is the logging interface used by the Manager and its stores.
	logger Logger
	// encryption, when set, encrypts encoded values before they reach storage.
	encryption EncryptionManager
	// defaultStore is the store name DefaultStore resolves to.
	defaultStore string
	// cacheTTL is the lifetime of cached entries.
	cacheTTL time.Duration
}

// Option configures a Manager.
type Option func(*Config)

// WithStorage sets the Storage backend. This option is mandatory for a functional Manager;
// without it every store resolution fails with ErrStorageUnavailable.
func WithStorage(s Storage) Option {
	return func(c *Config) {
		c.storage = s
	}
}

// WithCache sets an optional read-through Cache for stored entries.
func WithCache(cache Cache) Option {
	return func(c *Config) {
		c.cache = cache
	}
}

// WithCacheTTL sets how long cached entries live. Non-positive values are ignored.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithLogger sets the Logger. If not set, NewDefaultLogger is used.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithEncryption encrypts every encoded value at rest with the given manager.
func WithEncryption(e EncryptionManager) Option {
	return func(c *Config) {
		c.encryption = e
	}
}

// WithDefaultStore changes the backing store name used by DefaultStore.
// Blank names are ignored.
func WithDefaultStore(name string) Option {
	return func(c *Config) {
		if name = strings.TrimSpace(name); name != "" {
			c.defaultStore = name
		}
	}
}
