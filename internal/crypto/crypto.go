package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// sealedPrefix marks a stored value as ciphertext. Values without it are
// returned unchanged by Open so rows written before encryption was enabled
// stay readable.
const sealedPrefix = "enc:v1:"

// ErrNoKey is returned when a sealed value is read without a configured key.
var ErrNoKey = errors.New("value is encrypted but no encryption key is configured")

// FieldCipher seals individual text columns with AES-256-GCM. The row id is
// bound as additional data, so a sealed value only opens for the row it was
// written to.
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher creates a FieldCipher from a hex-encoded 32-byte key.
// Returns nil if key is empty (encryption disabled).
func NewFieldCipher(hexKey string) (*FieldCipher, error) {
	if hexKey == "" {
		return nil, nil
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding hex key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return &FieldCipher{aead: aead}, nil
}

// Seal encrypts plaintext for the row identified by rowID. A nil cipher
// returns plaintext unchanged.
func (c *FieldCipher) Seal(plaintext, rowID string) (string, error) {
	if c == nil {
		return plaintext, nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), []byte(rowID))
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Unprefixed values pass through as plaintext.
func (c *FieldCipher) Open(stored, rowID string) (string, error) {
	encoded, ok := strings.CutPrefix(stored, sealedPrefix)
	if !ok {
		return stored, nil
	}
	if c == nil {
		return "", ErrNoKey
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding base64: %w", err)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, []byte(rowID))
	if err != nil {
		return "", fmt.Errorf("decrypting: %w", err)
	}

	return string(plaintext), nil
}
