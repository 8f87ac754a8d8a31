// Package crypto seals small values (cart and session cookie payloads)
// with AES-256-GCM so the browser cannot read or forge them.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

type Sealer interface {
	Seal(value string) (string, error)
	Open(sealed string) (string, error)
}

type sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer from a base64 encoded 256-bit key.
func NewSealer(keyStr string) (Sealer, error) {
	if keyStr == "" {
		return nil, fmt.Errorf("cookie key is required")
	}

	key, err := base64.StdEncoding.DecodeString(keyStr)
	if err != nil {
		return nil, fmt.Errorf("decode cookie key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("cookie key must be 32 bytes when base64 decoded, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &sealer{aead: aead}, nil
}

func (s *sealer) Seal(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(value), nil)
	// URL-safe: the result travels in a cookie value
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("sealed value too short")
	}

	nonce, cipherData := data[:nonceSize], data[nonceSize:]
	plain, err := s.aead.Open(nil, nonce, cipherData, nil)
	if err != nil {
		return "", fmt.Errorf("open sealed value: %w", err)
	}

	return string(plain), nil
}
