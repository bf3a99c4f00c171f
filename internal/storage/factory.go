package storage

import (
	"fmt"
	"log/slog"

	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/storage/memory"
	"github.com/cosmosviz/sensor/internal/storage/postgres"
	sqlitestorage "github.com/cosmosviz/sensor/internal/storage/sqlite"
	"github.com/cosmosviz/sensor/internal/storage/websocket"
)

// NewBackend creates a recording backend based on configuration.
func NewBackend(cfg config.StorageConfig, log *slog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(postgres.Dependencies{Log: log}), nil
	case "sqlite":
		return sqlitestorage.New(sqlitestorage.Config{
			DumpPath:     cfg.Sqlite.DumpPath,
			DumpInterval: cfg.Sqlite.DumpInterval,
		}, log)
	case "websocket":
		return websocket.New(websocket.Config{
			URL:    cfg.Websocket.URL,
			Secret: cfg.Websocket.Secret,
		}, log), nil
	case "memory":
		return memory.New(memory.Config{
			OutputDir:      cfg.Memory.OutputDir,
			CompressOutput: cfg.Memory.CompressOutput,
		}), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
