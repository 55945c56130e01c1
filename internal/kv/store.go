// ABOUTME: Key-value store abstraction shared by the plain and secure backends.
// ABOUTME: Values are opaque strings; a missing key is reported as ok=false, not an error.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrLocked is returned by a SecureStore whose master key is not loaded.
	ErrLocked = errors.New("secure store is locked")
	// ErrReadOnly is returned when another process holds the write lock.
	ErrReadOnly = errors.New("store is read-only: database is locked by another process")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")
)

// Store is a string-keyed, string-valued store.
// Implementations do not retry; backend errors are returned wrapped.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
