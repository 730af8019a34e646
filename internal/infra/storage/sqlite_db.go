// Package storage provides the persistence layer for the simulation server.
// The core never touches this package: it only produces and consumes the
// serializable GameState aggregate, which is persisted here as JSON save
// slots with a metadata sidecar for listing.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite initializes the local SQLite database and creates the schema
// for persisting game-state save slots.
func InitSQLite(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			company_name TEXT NOT NULL,
			current_day INTEGER NOT NULL DEFAULT 1,
			money REAL NOT NULL DEFAULT 0,
			reputation INTEGER NOT NULL DEFAULT 0,
			company_stage TEXT NOT NULL,
			employee_count INTEGER NOT NULL DEFAULT 0,
			project_count INTEGER NOT NULL DEFAULT 0,
			state_json TEXT NOT NULL,
			saved_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_saved_at ON saves(saved_at);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
