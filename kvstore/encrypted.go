package kvstore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var _ Backend = (*Encrypted)(nil)

// Encrypted seals values with XChaCha20-Poly1305 before handing them to the
// wrapped backend. Keys are left in clear so prefix listing still works.
type Encrypted struct {
	Backend
	key []byte
}

// NewEncrypted wraps backend. key must be 32 bytes.
func NewEncrypted(backend Backend, key []byte) (*Encrypted, error) {
	if backend == nil {
		return nil, fmt.Errorf("[kvstore NewEncrypted] backend is required")
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("[kvstore NewEncrypted] key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &Encrypted{Backend: backend, key: key}, nil
}

func (e *Encrypted) Get(ctx context.Context, key string) (string, bool, error) {
	sealed, ok, err := e.Backend.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := e.open(sealed, key)
	if err != nil {
		return "", false, err
	}
	return plain, true, nil
}

func (e *Encrypted) Set(ctx context.Context, key, value string) error {
	sealed, err := e.seal(value, key)
	if err != nil {
		return err
	}
	return e.Backend.Set(ctx, key, sealed)
}

// seal binds the ciphertext to its key via the additional data, so a value
// copied under another key fails to open.
func (e *Encrypted) seal(plaintext, key string) (string, error) {
	aead, err := chacha20poly1305.NewX(e.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nonce, nonce, []byte(plaintext), []byte(key))
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (e *Encrypted) open(encoded, key string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	aead, err := chacha20poly1305.NewX(e.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(ciphertext) < aead.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, []byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}
