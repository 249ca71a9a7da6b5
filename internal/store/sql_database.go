package store

import (
	"database/sql"

	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/migrations"
)

// DB is a *sql.DB bound to one backend: PostgreSQL on the server or SQLite
// on the client.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	client             bool
}

// Migrate applies the embedded schema that matches the backend.
func (db *DB) Migrate() error {
	if db.client {
		return migrations.MigrateClient(db.DB)
	}

	return migrations.Migrate(db.DB)
}
