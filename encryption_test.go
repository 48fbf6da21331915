package simpleprefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adapterTestKey = "this-is-a-32-byte-key-for-test!!"

func TestEncryptionAdapter(t *testing.T) {
	adapter, err := NewEncryptionAdapterWithKey([]byte(adapterTestKey))
	require.NoError(t, err)
	require.NotNil(t, adapter)

	plaintext := "sensitive data"
	encrypted, err := adapter.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, encrypted)

	decrypted, err := adapter.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptionAdapterWithEnv(t *testing.T) {
	t.Setenv("SIMPLEPREFS_ENCRYPTION_KEY", adapterTestKey)

	adapter, err := NewEncryptionAdapter()
	require.NoError(t, err)

	encrypted, err := adapter.Encrypt("token")
	require.NoError(t, err)
	decrypted, err := adapter.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "token", decrypted)
}

func TestEncryptionAdapter_ShortKey(t *testing.T) {
	_, err := NewEncryptionAdapterWithKey([]byte("short"))
	assert.Error(t, err)
}

func TestStoreWithEncryption(t *testing.T) {
	adapter, err := NewEncryptionAdapterWithKey([]byte(adapterTestKey))
	require.NoError(t, err)

	s, storage := newTestStore(t, WithEncryption(adapter))
	ctx := context.Background()

	require.NoError(t, s.PutString(ctx, "api_token", "s3cr3t"))
	require.NoError(t, s.PutStringSet(ctx, "scopes", []string{"write", "read"}))

	e, ok := storage.raw("user_store", "api_token")
	require.True(t, ok)
	assert.NotEqual(t, "s3cr3t", e.Value, "values are encrypted at rest")
	assert.Equal(t, TypeString, e.Type)

	v, err := s.GetString(ctx, "api_token", "")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", v)

	scopes, err := s.GetStringSet(ctx, "scopes", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "write"}, scopes)
}
