package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/simpleprefs"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer func() {
		if err := cache.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	if err := cache.Set(ctx, "key1", []byte("value1"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("Expected 'value1', got '%s'", val)
	}

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err = cache.Get(ctx, "key1")
	if !errors.Is(err, simpleprefs.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	assert.NoError(t, cache.Delete(ctx, "never-set"))
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
	require.NoError(t, cache.Set(ctx, "forever", []byte("y"), 0))

	time.Sleep(30 * time.Millisecond)

	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, simpleprefs.ErrNotFound)

	v, err := cache.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), v)
}

func TestMemoryCache_Sweep(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheWithInterval(time.Hour)
	defer cache.Close()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Millisecond))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Hour))

	cache.sweep(time.Now().Add(time.Minute))

	cache.mu.RLock()
	_, aPresent := cache.items["a"]
	_, bPresent := cache.items["b"]
	cache.mu.RUnlock()
	assert.False(t, aPresent, "expired items are swept")
	assert.True(t, bPresent)
}

func TestMemoryCache_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Close()

	for _, k := range []string{"pref:user_store:a", "pref:user_store:b", "pref:user_store2:a", "pref:other:a"} {
		require.NoError(t, cache.Set(ctx, k, []byte(k), time.Minute))
	}

	require.NoError(t, cache.DeletePrefix(ctx, "pref:user_store:"))

	for _, gone := range []string{"pref:user_store:a", "pref:user_store:b"} {
		_, err := cache.Get(ctx, gone)
		assert.ErrorIs(t, err, simpleprefs.ErrNotFound, gone)
	}
	for _, kept := range []string{"pref:user_store2:a", "pref:other:a"} {
		_, err := cache.Get(ctx, kept)
		assert.NoError(t, err, kept)
	}
}

func TestMemoryCache_CloseIdempotent(t *testing.T) {
	cache := NewMemoryCache()
	assert.NoError(t, cache.Close())
	assert.NotPanics(t, func() { _ = cache.Close() })
}
