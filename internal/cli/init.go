// Package cli provides common initialization shared by the server and
// worker entrypoints.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"billfold/internal/config"
	"billfold/internal/ledger"
	"billfold/internal/ledger/memory"
	"billfold/internal/log"
	"billfold/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger(component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the configured ledger store. The returned close func
// is a no-op for the memory backend.
func OpenStore(logger *log.Logger, cfg *config.Config) (ledger.Store, func() error) {
	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("Using in-memory store, data is lost on restart")
		return memory.New(), func() error { return nil }
	default:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		return repo, repo.Close
	}
}
