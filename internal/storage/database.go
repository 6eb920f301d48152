package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS resources (
			language TEXT NOT NULL,
			organization TEXT NOT NULL,
			resource TEXT NOT NULL,
			version TEXT NOT NULL,
			run_id TEXT NOT NULL,
			chunk_count INTEGER NOT NULL,
			indexed_at DATETIME NOT NULL,
			PRIMARY KEY (language, organization, resource, version)
		);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			path TEXT PRIMARY KEY,
			language TEXT NOT NULL,
			organization TEXT NOT NULL,
			resource TEXT NOT NULL,
			version TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata TEXT NOT NULL,
			run_id TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_resource
			ON chunks (language, organization, resource, version);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
