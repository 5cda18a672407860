// Package kv provides the key-value backends the persistence adapter writes
// through. Values are opaque strings; serialization is the caller's concern.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound reports that a key has no stored value. Callers distinguish it
// from backend failures to decide between "first run" and "degraded store".
var ErrNotFound = errors.New("key not found")

// Store is a minimal per-user key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
