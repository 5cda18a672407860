// Package store implements the persistence adapter: the JSON codec between
// the in-memory collections and the key-value backend. Reads fall back to a
// caller-supplied default; writes are fire-and-forget. Storage trouble is
// logged, never surfaced to the user.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"debtbook/internal/kv"
)

// Keys under which the collections and the theme flag are stored.
const (
	KeyAccounts     = "accounts"
	KeyTransactions = "transactions"
	KeyTheme        = "theme"
)

// DefaultPrefix namespaces every key so unrelated tools can share a store.
const DefaultPrefix = "debtbook:"

// Adapter reads and writes JSON-encoded values through a kv.Store.
type Adapter struct {
	kv     kv.Store
	prefix string
}

func NewAdapter(store kv.Store, prefix string) *Adapter {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Adapter{kv: store, prefix: prefix}
}

func (a *Adapter) key(name string) string {
	return a.prefix + name
}

// Has reports whether any value is stored under name, regardless of shape.
func (a *Adapter) Has(ctx context.Context, name string) bool {
	_, err := a.kv.Get(ctx, a.key(name))
	return err == nil
}

// LoadValue decodes the value stored under name into v. It returns
// kv.ErrNotFound when nothing is stored; the caller decides the fallback.
func (a *Adapter) LoadValue(ctx context.Context, name string, v any) error {
	raw, err := a.kv.Get(ctx, a.key(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %q: %w", name, err)
	}
	return nil
}

// SaveValue encodes v and writes it under name.
func (a *Adapter) SaveValue(ctx context.Context, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", name, err)
	}
	if err := a.kv.Put(ctx, a.key(name), string(raw)); err != nil {
		return fmt.Errorf("store %q: %w", name, err)
	}
	return nil
}

// Load returns the value stored under name, or fallback when the key is
// missing, the payload does not decode, or the backend fails. A missing key
// is the normal first-run case and is not logged; everything else is.
func Load[T any](ctx context.Context, a *Adapter, name string, fallback T) T {
	var v T
	if err := a.LoadValue(ctx, name, &v); err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			slog.WarnContext(ctx, "Falling back to default value", "key", name, "error", err)
		}
		return fallback
	}
	return v
}

// Save writes v under name, fire and forget: a failed write is logged and
// dropped because a full or unavailable store must never block the session.
func Save[T any](ctx context.Context, a *Adapter, name string, v T) {
	if err := a.SaveValue(ctx, name, v); err != nil {
		slog.WarnContext(ctx, "Dropping failed write", "key", name, "error", err)
	}
}
