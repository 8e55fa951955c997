package store

import (
	"fmt"

	"github.com/robalobadob/associa/internal/config"
	"github.com/robalobadob/associa/internal/leaderboard"
)

// Store is a leaderboard.Repository that may hold resources.
// Implementations are backed by memory, a JSON file, SQLite or PostgreSQL.
type Store interface {
	leaderboard.Repository

	// Close releases underlying handles (files, database pools).
	Close() error
}

// Open builds the Store selected by cfg.Backend.
func Open(cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.DataFile), nil
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("store: postgres backend needs DATABASE_URL")
		}
		return OpenPostgres(cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
}
