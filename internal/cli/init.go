// Package cli provides common CLI initialization utilities shared by
// cmd/debtbook and cmd/debtbook-export.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"debtbook/internal/backend"
	"debtbook/internal/config"
	"debtbook/internal/log"
)

// SetupLogger initializes structured logging with default settings and sets
// it as the process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend builds the configured storage backend. A broken sqlite path
// degrades to memory inside the factory; only a misconfigured backend type
// exits the process.
func InitBackend(logger *log.Logger, cfg *config.Config) *backend.Result {
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.Create(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return result
}
