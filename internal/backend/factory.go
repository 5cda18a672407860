// Package backend selects and constructs the key-value store the session
// persists through.
package backend

import (
	"fmt"
	"log/slog"

	"debtbook/internal/kv"
)

// Type identifies a storage backend.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{SQLite, Memory}
}

// Config holds configuration for backend creation.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLite && c.SQLiteDBPath == "" {
		return fmt.Errorf("sqlite database path is required for sqlite backend")
	}
	return nil
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the store and an optional cleanup function.
type Result struct {
	Store   kv.Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the configured backend. A sqlite store that cannot be opened
// degrades to the in-memory store with a logged warning: the session still
// runs, it just will not outlive the process.
func (f *Factory) Create(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SQLite:
		st, err := kv.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			f.logger.Warn("Falling back to in-memory store",
				"error", err, "db_path", cfg.SQLiteDBPath)
			return &Result{Store: kv.NewMemoryStore()}, nil
		}
		f.logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: st, Cleanup: st.Close}, nil
	case Memory:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: kv.NewMemoryStore()}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
