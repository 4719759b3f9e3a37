// internal/storage/factory.go
package storage

import (
	"fmt"
	"log/slog"

	"github.com/dcs-liberation/theater/internal/config"
	"github.com/dcs-liberation/theater/internal/database"
	"github.com/dcs-liberation/theater/internal/storage/gormstore"
	"github.com/dcs-liberation/theater/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, dbCfg config.DBConfig, logger *slog.Logger) (Backend, error) {
	writer := gormstore.Config{
		FlushInterval: cfg.FlushInterval,
		BatchSize:     cfg.BatchSize,
		MaxPending:    cfg.MaxPending,
	}

	switch cfg.Type {
	case "postgres":
		db, err := database.OpenPostgres(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return gormstore.New(gormstore.Dependencies{DB: db, Logger: logger}, writer), nil
	case "sqlite":
		db, err := database.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		writer.DumpPath = cfg.SQLite.DumpPath
		return gormstore.New(gormstore.Dependencies{DB: db, Logger: logger}, writer), nil
	case "memory":
		return memory.New(cfg.Memory.MaxQueries), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
