// Package simpleprefs provides an adapter for the encryption package.
package simpleprefs

import (
	"github.com/CreativeUnicorns/simpleprefs/encryption"
)

// EncryptionAdapter adapts encryption.Manager to the EncryptionManager interface.
type EncryptionAdapter struct {
	manager *encryption.Manager
}

// NewEncryptionAdapter creates an EncryptionAdapter keyed from SIMPLEPREFS_ENCRYPTION_KEY.
func NewEncryptionAdapter() (*EncryptionAdapter, error) {
	manager, err := encryption.NewManager()
	if err != nil {
		return nil, err
	}
	return &EncryptionAdapter{manager: manager}, nil
}

// NewEncryptionAdapterWithKey creates an EncryptionAdapter from explicit key material.
func NewEncryptionAdapterWithKey(key []byte) (*EncryptionAdapter, error) {
	manager, err := encryption.NewManagerWithKey(key)
	if err != nil {
		return nil, err
	}
	return &EncryptionAdapter{manager: manager}, nil
}

// Encrypt encrypts plaintext.
func (e *EncryptionAdapter) Encrypt(plaintext string) (string, error) {
	return e.manager.Encrypt(plaintext)
}

// Decrypt decrypts a value produced by Encrypt.
func (e *EncryptionAdapter) Decrypt(encrypted string) (string, error) {
	return e.manager.Decrypt(encrypted)
}
