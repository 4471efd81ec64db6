package config

import (
	"encoding/hex"
	"fmt"
)

type StoreBackend string

const (
	StoreBackendMemory StoreBackend = "memory"
	StoreBackendFile   StoreBackend = "file"
	StoreBackendSQLite StoreBackend = "sqlite"
	StoreBackendRedis  StoreBackend = "redis"
)

type StoreConfig interface {
	GetStoreBackend() StoreBackend
	GetStorePath() string
	GetRedisURL() string
	GetRedisNamespace() string
	GetEncryptionKey() ([]byte, error)
}

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetStoreBackend() StoreBackend {
	return StoreBackend(GetEnv("STORE_BACKEND", string(StoreBackendFile)))
}

// GetStorePath is the file or SQLite database path. Empty selects the
// backend's default location.
func (Store) GetStorePath() string {
	return GetEnv("STORE_PATH", "")
}

func (Store) GetRedisURL() string {
	return GetEnv("REDIS_URL", "redis://localhost:6379/0")
}

func (Store) GetRedisNamespace() string {
	return GetEnv("REDIS_NAMESPACE", "sso:")
}

// GetEncryptionKey decodes STORE_ENCRYPTION_KEY (64 hex characters). A nil
// key disables encryption at rest.
func (Store) GetEncryptionKey() ([]byte, error) {
	raw := GetEnv("STORE_ENCRYPTION_KEY", "")
	if raw == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("STORE_ENCRYPTION_KEY must be hex encoded: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("STORE_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
