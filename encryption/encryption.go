// Package encryption provides AES-256-GCM encryption of encoded preference values at rest.
// Keys are read from the environment and stretched with SHA-256 so any key of sufficient
// length yields a valid AES-256 cipher.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// MinKeyLength is the minimum accepted length of the key material in bytes.
	MinKeyLength = 32
	// EnvKeyName is the environment variable holding the key material.
	EnvKeyName = "SIMPLEPREFS_ENCRYPTION_KEY"
)

var (
	// ErrInvalidKeyLength is returned when the key material is shorter than MinKeyLength.
	ErrInvalidKeyLength = errors.New("encryption key must be at least 32 bytes")
	// ErrKeyNotFound is returned when the key environment variable is not set.
	ErrKeyNotFound = errors.New("encryption key not found in environment variable " + EnvKeyName)
	// ErrEncryptionFailed is returned when encryption fails.
	ErrEncryptionFailed = errors.New("encryption operation failed")
	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption operation failed")
	// ErrInvalidCiphertext is returned when the ciphertext is too short to hold a nonce.
	ErrInvalidCiphertext = errors.New("invalid ciphertext: too short or malformed")
)

// Manager encrypts and decrypts strings with AES-256-GCM.
type Manager struct {
	key  []byte
	aead cipher.AEAD
}

// NewManager creates a Manager from the key material in EnvKeyName.
func NewManager() (*Manager, error) {
	keyStr := os.Getenv(EnvKeyName)
	if keyStr == "" {
		return nil, ErrKeyNotFound
	}
	return NewManagerWithKey([]byte(keyStr))
}

// NewManagerWithKey creates a Manager from the given key material.
func NewManagerWithKey(keyMaterial []byte) (*Manager, error) {
	if err := checkLength(keyMaterial); err != nil {
		return nil, err
	}
	key := deriveKey(keyMaterial)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create cipher: %v", ErrEncryptionFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GCM: %v", ErrEncryptionFailed, err)
	}
	return &Manager{key: key, aead: aead}, nil
}

// Encrypt returns base64(nonce || ciphertext). The empty string encrypts to itself.
func (m *Manager) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, m.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: failed to generate nonce: %v", ErrEncryptionFailed, err)
	}

	sealed := m.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (m *Manager) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrDecryptionFailed, err)
	}

	nonceSize := m.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := m.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decrypt: %v", ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}

// ValidateKey checks the key material in EnvKeyName without building a Manager.
// Call it at startup to fail fast on a bad configuration.
func ValidateKey() error {
	keyStr := os.Getenv(EnvKeyName)
	if keyStr == "" {
		return ErrKeyNotFound
	}
	return checkLength([]byte(keyStr))
}

func checkLength(keyMaterial []byte) error {
	if len(keyMaterial) < MinKeyLength {
		return fmt.Errorf("%w: got %d bytes, need at least %d", ErrInvalidKeyLength, len(keyMaterial), MinKeyLength)
	}
	return nil
}

func deriveKey(keyMaterial []byte) []byte {
	sum := sha256.Sum256(keyMaterial)
	return sum[:]
}
