package database

import (
	"fmt"
	"os"
	"path/filepath"

	"teamcap/internal/capacity"
	"teamcap/internal/config"
)

// NewStoreFromConfig creates a DirectoryStore implementation based on the
// database config type. clientID names the on-disk database file so separate
// installs never share a cache.
func NewStoreFromConfig(cfg config.DatabaseConfig, clientID string, logger capacity.Logger) (*SQLiteStore, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, clientID+".db")
		return NewSQLiteStore(dbPath, logger)
	case "memory":
		return NewSQLiteStore(":memory:", logger)
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
