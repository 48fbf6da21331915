package simpleprefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Store is a typed handle on one named preference store.
// Generated accessors hold a *Store and call its Get/Put pairs.
type Store struct {
	name   string
	config *Config
}

// Name returns the store name.
func (s *Store) Name() string { return s.name }

// GetBool returns the bool stored under key, or def when the key is absent.
func (s *Store) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	return get(ctx, s, key, TypeBool, def)
}

// PutBool stores a bool under key.
func (s *Store) PutBool(ctx context.Context, key string, value bool) error {
	return s.put(ctx, key, TypeBool, value)
}

// GetInt32 returns the int32 stored under key, or def when the key is absent.
func (s *Store) GetInt32(ctx context.Context, key string, def int32) (int32, error) {
	return get(ctx, s, key, TypeInt32, def)
}

// PutInt32 stores an int32 under key.
func (s *Store) PutInt32(ctx context.Context, key string, value int32) error {
	return s.put(ctx, key, TypeInt32, value)
}

// GetInt64 returns the int64 stored under key, or def when the key is absent.
func (s *Store) GetInt64(ctx context.Context, key string, def int64) (int64, error) {
	return get(ctx, s, key, TypeInt64, def)
}

// PutInt64 stores an int64 under key.
func (s *Store) PutInt64(ctx context.Context, key string, value int64) error {
	return s.put(ctx, key, TypeInt64, value)
}

// GetFloat32 returns the float32 stored under key, or def when the key is absent.
func (s *Store) GetFloat32(ctx context.Context, key string, def float32) (float32, error) {
	return get(ctx, s, key, TypeFloat32, def)
}

// PutFloat32 stores a float32 under key.
func (s *Store) PutFloat32(ctx context.Context, key string, value float32) error {
	return s.put(ctx, key, TypeFloat32, value)
}

// GetString returns the string stored under key, or def when the key is absent.
func (s *Store) GetString(ctx context.Context, key string, def string) (string, error) {
	return get(ctx, s, key, TypeString, def)
}

// PutString stores a string under key.
func (s *Store) PutString(ctx context.Context, key string, value string) error {
	return s.put(ctx, key, TypeString, value)
}

// GetStringSet returns the set stored under key, or def when the key is absent.
// The result is always sorted and free of duplicates.
func (s *Store) GetStringSet(ctx context.Context, key string, def []string) ([]string, error) {
	v, err := get(ctx, s, key, TypeStringSet, def)
	if err != nil {
		return nil, err
	}
	return NormalizeStringSet(v), nil
}

// PutStringSet stores a set under key. Duplicate members collapse.
func (s *Store) PutStringSet(ctx context.Context, key string, value []string) error {
	return s.put(ctx, key, TypeStringSet, value)
}

// Contains reports whether key holds a value.
func (s *Store) Contains(ctx context.Context, key string) (bool, error) {
	_, err := s.load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.config.storage.Delete(ctx, s.name, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("store %q: remove %q: %w", s.name, key, err)
	}
	s.evict(ctx, key)
	return nil
}

// Clear removes every entry of the store in one step. Clearing an empty store succeeds.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.config.storage.Clear(ctx, s.name); err != nil {
		return fmt.Errorf("store %q: clear: %w", s.name, err)
	}
	if s.config.cache != nil {
		if err := s.config.cache.DeletePrefix(ctx, s.cachePrefix()); err != nil {
			s.config.logger.Error("Failed to invalidate cached store", "store", s.name, "error", err)
		}
	}
	return nil
}

// Keys returns the keys currently held by the store in sorted order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	all, err := s.config.storage.GetAll(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("store %q: keys: %w", s.name, err)
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func get[T any](ctx context.Context, s *Store, key string, t ValueType, def T) (T, error) {
	e, err := s.load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	if e.Type != t {
		return def, fmt.Errorf("%w: key %q holds %s, not %s", ErrTypeMismatch, key, e.Type, t)
	}

	raw := e.Value
	if s.config.encryption != nil {
		if raw, err = s.config.encryption.Decrypt(raw); err != nil {
			return def, fmt.Errorf("store %q: decrypt %q: %w", s.name, key, err)
		}
	}
	v, err := DecodeValue(t, raw)
	if err != nil {
		return def, fmt.Errorf("store %q: key %q: %w", s.name, key, err)
	}
	typed, ok := v.(T)
	if !ok {
		return def, fmt.Errorf("%w: key %q decoded as %T", ErrTypeMismatch, key, v)
	}
	return typed, nil
}

func (s *Store) put(ctx context.Context, key string, t ValueType, value any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	encoded, err := EncodeValue(t, value)
	if err != nil {
		return err
	}
	if s.config.encryption != nil {
		if encoded, err = s.config.encryption.Encrypt(encoded); err != nil {
			return fmt.Errorf("store %q: encrypt %q: %w", s.name, key, err)
		}
	}

	e := &Entry{
		Store:     s.name,
		Key:       key,
		Value:     encoded,
		Type:      t,
		UpdatedAt: time.Now(),
	}
	if err := s.config.storage.Set(ctx, e); err != nil {
		return fmt.Errorf("store %q: put %q: %w", s.name, key, err)
	}
	s.remember(ctx, e)
	return nil
}

func (s *Store) load(ctx context.Context, key string) (*Entry, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if e, ok := s.cached(ctx, key); ok {
		return e, nil
	}
	e, err := s.config.storage.Get(ctx, s.name, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store %q: get %q: %w", s.name, key, err)
	}
	s.remember(ctx, e)
	return e, nil
}

func (s *Store) cacheKey(key string) string {
	return s.cachePrefix() + key
}

func (s *Store) cachePrefix() string {
	return "pref:" + s.name + ":"
}

func (s *Store) cached(ctx context.Context, key string) (*Entry, bool) {
	if s.config.cache == nil {
		return nil, false
	}
	data, err := s.config.cache.Get(ctx, s.cacheKey(key))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.config.logger.Warn("Cache read failed", "store", s.name, "key", key, "error", err)
		}
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		s.config.logger.Warn("Discarding malformed cache entry", "store", s.name, "key", key, "error", err)
		return nil, false
	}
	return &e, true
}

func (s *Store) remember(ctx context.Context, e *Entry) {
	if s.config.cache == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		s.config.logger.Error("Failed to marshal entry for cache", "error", err)
		return
	}
	if err := s.config.cache.Set(ctx, s.cacheKey(e.Key), data, s.config.cacheTTL); err != nil {
		s.config.logger.Error("Failed to cache entry", "store", s.name, "key", e.Key, "error", err)
	}
}

func (s *Store) evict(ctx context.Context, key string) {
	if s.config.cache == nil {
		return
	}
	if err := s.config.cache.Delete(ctx, s.cacheKey(key)); err != nil && !errors.Is(err, ErrNotFound) {
		s.config.logger.Error("Failed to evict cached entry", "store", s.name, "key", key, "error", err)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
