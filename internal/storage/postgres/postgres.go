// Package postgres implements the storage.Backend interface using
// GORM/PostgreSQL. It wraps the shared GORM backend; the only
// Postgres-specific concern is establishing the connection.
package postgres

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/cosmosviz/sensor/internal/database"
	"github.com/cosmosviz/sensor/internal/storage/gormdb"
)

// Dependencies holds dependencies for the Postgres backend. DB may be nil,
// in which case Init connects using viper config.
type Dependencies struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// Backend wraps the GORM backend over a Postgres connection.
type Backend struct {
	*gormdb.Backend
	deps Dependencies
}

// New creates a new Postgres storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// Init establishes the connection if none was injected and initializes the
// embedded GORM backend.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		db, err := database.GetPostgresDB()
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to access sql interface: %w", err)
		}
		if err = sqlDB.Ping(); err != nil {
			return fmt.Errorf("failed to validate connection: %w", err)
		}
		sqlDB.SetMaxOpenConns(10)
		b.deps.DB = db
	}

	b.Backend = gormdb.New(gormdb.Dependencies{DB: b.deps.DB, Log: b.deps.Log})
	return b.Backend.Init()
}
