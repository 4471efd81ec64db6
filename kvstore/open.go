package kvstore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jrsteele09/go-sso-client/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Open builds the backend selected by cfg, wrapped in NewEncrypted when an
// encryption key is configured
func Open(cfg config.StoreConfig, fs afero.Fs) (Backend, error) {
	key, err := cfg.GetEncryptionKey()
	if err != nil {
		return nil, fmt.Errorf("[kvstore Open] %w", err)
	}

	backend, err := openBackend(cfg, fs)
	if err != nil {
		return nil, fmt.Errorf("[kvstore Open] %s backend: %w", cfg.GetStoreBackend(), err)
	}
	log.Info().Str("backend", string(cfg.GetStoreBackend())).Bool("encrypted", key != nil).Msg("store opened")

	if key == nil {
		return backend, nil
	}
	enc, err := NewEncrypted(backend, key)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("[kvstore Open] %w", err)
	}
	return enc, nil
}

func openBackend(cfg config.StoreConfig, fs afero.Fs) (Backend, error) {
	switch cfg.GetStoreBackend() {
	case config.StoreBackendMemory:
		return NewInMemory(), nil
	case config.StoreBackendFile:
		path, err := storePath(cfg.GetStorePath(), ".json")
		if err != nil {
			return nil, err
		}
		return NewFile(fs, path)
	case config.StoreBackendSQLite:
		// the sqlite driver opens files itself, so fs must be the OS filesystem
		if _, ok := fs.(*afero.OsFs); !ok {
			return nil, fmt.Errorf("sqlite needs the OS filesystem, got %s", fs.Name())
		}
		path, err := storePath(cfg.GetStorePath(), ".db")
		if err != nil {
			return nil, err
		}
		if err := fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		return NewSQLite(path)
	case config.StoreBackendRedis:
		return NewRedis(cfg.GetRedisURL(), cfg.GetRedisNamespace())
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.GetStoreBackend())
}

// storePath returns path, or the default store location with ext
func storePath(path, ext string) (string, error) {
	if path != "" {
		return path, nil
	}
	def, err := DefaultFilePath()
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(def, filepath.Ext(def)) + ext, nil
}
