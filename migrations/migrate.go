// Package migrations embeds the schema of the server database (PostgreSQL)
// and of the client session file (SQLite) and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql
var postgresMigrations embed.FS

//go:embed sqlite/*.sql
var sqliteMigrations embed.FS

var errNilDB = errors.New("migration error: db is nil")

// Migrate brings the server PostgreSQL schema up to date.
func Migrate(db *sql.DB) error {
	return up(db, postgresMigrations, "pgx", "postgres")
}

// MigrateClient brings the client SQLite schema up to date.
func MigrateClient(db *sql.DB) error {
	return up(db, sqliteMigrations, "sqlite3", "sqlite")
}

func up(db *sql.DB, fsys fs.FS, dialect, dir string) error {
	if db == nil {
		return errNilDB
	}

	goose.SetBaseFS(fsys)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
