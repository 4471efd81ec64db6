package kvstore

import "context"

// Backend is the raw persistence behind a Store. Keys are stored verbatim;
// namespacing is the Store's concern.
type Backend interface {
	// Get returns the value stored under key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces the value stored under key
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix ("" lists all keys)
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Flush removes every key held by the backend
	Flush(ctx context.Context) error

	// Close releases any underlying resources
	Close() error
}
