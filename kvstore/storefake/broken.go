package storefake

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/jrsteele09/go-sso-client/kvstore"
)

// ErrBroken is returned by every write of a broken backend
var ErrBroken = errors.New("storefake: backend broken")

// Broken wraps a Backend and fails writes once Break has been called. Reads
// keep working.
type Broken struct {
	kvstore.Backend
	broken atomic.Bool
}

// NewBroken wraps an in-memory backend
func NewBroken() *Broken {
	return &Broken{Backend: kvstore.NewInMemory()}
}

// Break makes every later Set, Delete and Flush fail
func (b *Broken) Break() {
	b.broken.Store(true)
}

func (b *Broken) Set(ctx context.Context, key, value string) error {
	if b.broken.Load() {
		return ErrBroken
	}
	return b.Backend.Set(ctx, key, value)
}

func (b *Broken) Delete(ctx context.Context, key string) error {
	if b.broken.Load() {
		return ErrBroken
	}
	return b.Backend.Delete(ctx, key)
}

func (b *Broken) Flush(ctx context.Context) error {
	if b.broken.Load() {
		return ErrBroken
	}
	return b.Backend.Flush(ctx)
}
