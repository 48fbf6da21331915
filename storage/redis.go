package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CreativeUnicorns/simpleprefs"
)

// redisHashClient is the subset of *redis.Client used by RedisStorage.
type redisHashClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// redisEntry is the JSON document stored in a store hash field.
type redisEntry struct {
	Value     string                `json:"value"`
	Type      simpleprefs.ValueType `json:"type"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// RedisStorage implements the Storage interface on Redis.
// Each store is one hash at "simpleprefs:<store>" whose fields are the entry keys,
// so Clear is a single DEL.
type RedisStorage struct {
	client redisHashClient
}

// NewRedisStorage connects to Redis at addr and verifies the connection.
func NewRedisStorage(addr, password string, db int) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: failed to connect: %w", err)
	}
	return &RedisStorage{client: client}, nil
}

func storeHashKey(store string) string {
	return "simpleprefs:" + store
}

// Get retrieves an entry. It returns simpleprefs.ErrNotFound if the entry does not exist.
func (s *RedisStorage) Get(ctx context.Context, store, key string) (*simpleprefs.Entry, error) {
	data, err := s.client.HGet(ctx, storeHashKey(store), key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, simpleprefs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: failed to get '%s' from store '%s': %w", key, store, err)
	}
	return decodeRedisEntry(store, key, data)
}

// Set stores or updates an entry.
func (s *RedisStorage) Set(ctx context.Context, e *simpleprefs.Entry) error {
	data, err := json.Marshal(redisEntry{Value: e.Value, Type: e.Type, UpdatedAt: e.UpdatedAt})
	if err != nil {
		return fmt.Errorf("redis: failed to marshal entry '%s': %w", e.Key, err)
	}
	if err := s.client.HSet(ctx, storeHashKey(e.Store), e.Key, string(data)).Err(); err != nil {
		return fmt.Errorf("redis: failed to set '%s' in store '%s': %w", e.Key, e.Store, err)
	}
	return nil
}

// Delete removes an entry. It returns simpleprefs.ErrNotFound if the entry does not exist.
func (s *RedisStorage) Delete(ctx context.Context, store, key string) error {
	n, err := s.client.HDel(ctx, storeHashKey(store), key).Result()
	if err != nil {
		return fmt.Errorf("redis: failed to delete '%s' from store '%s': %w", key, store, err)
	}
	if n == 0 {
		return simpleprefs.ErrNotFound
	}
	return nil
}

// GetAll retrieves all entries of a store.
func (s *RedisStorage) GetAll(ctx context.Context, store string) (map[string]*simpleprefs.Entry, error) {
	fields, err := s.client.HGetAll(ctx, storeHashKey(store)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to read store '%s': %w", store, err)
	}

	out := make(map[string]*simpleprefs.Entry, len(fields))
	for key, data := range fields {
		e, err := decodeRedisEntry(store, key, data)
		if err != nil {
			return nil, err
		}
		out[key] = e
	}
	return out, nil
}

// Clear deletes the store hash.
func (s *RedisStorage) Clear(ctx context.Context, store string) error {
	if err := s.client.Del(ctx, storeHashKey(store)).Err(); err != nil {
		return fmt.Errorf("redis: failed to clear store '%s': %w", store, err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

func decodeRedisEntry(store, key, data string) (*simpleprefs.Entry, error) {
	var re redisEntry
	if err := json.Unmarshal([]byte(data), &re); err != nil {
		return nil, fmt.Errorf("redis: malformed entry '%s' in store '%s': %w", key, store, err)
	}
	return &simpleprefs.Entry{
		Store:     store,
		Key:       key,
		Value:     re.Value,
		Type:      re.Type,
		UpdatedAt: re.UpdatedAt,
	}, nil
}
