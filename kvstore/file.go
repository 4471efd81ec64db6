package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

var _ Backend = (*File)(nil)

// File persists every key in a single JSON document. The whole document is
// rewritten on each mutation, which suits the handful of keys a session keeps.
type File struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewFile creates a file backend at path on fs. The file is created lazily.
func NewFile(fs afero.Fs, path string) (*File, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("[kvstore NewFile] path is required")
	}
	return &File{fs: fs, path: path}, nil
}

// DefaultFilePath returns ~/.sso-client/store.json
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(home, ".sso-client", "store.json"), nil
}

func (f *File) load() (map[string]string, error) {
	values := make(map[string]string)

	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("reading store file '%s': %w", f.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decoding store file '%s': %w", f.path, err)
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating store directory '%s': %w", dir, err)
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding store file '%s': %w", f.path, err)
	}
	if err := afero.WriteFile(f.fs, f.path, data, 0600); err != nil {
		return fmt.Errorf("writing store file '%s': %w", f.path, err)
	}
	return nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

func (f *File) Keys(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *File) Flush(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fs.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing store file '%s': %w", f.path, err)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
