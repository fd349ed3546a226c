// Package storage persists loaded record sets as snapshots in SQLite,
// giving each dashboard refresh a durable audit trail.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SnapshotStore implements snapshot persistence using SQLite.
type SnapshotStore struct {
	db     *sql.DB
	dbPath string
}

// NewSnapshotStore creates a new SQLite snapshot store.
func NewSnapshotStore(dbPath string) (*SnapshotStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SnapshotStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Migrate creates the snapshot schema if it does not exist yet.
func (s *SnapshotStore) Migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS loads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			loaded_at TIMESTAMP NOT NULL,
			record_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			load_id INTEGER NOT NULL REFERENCES loads(id) ON DELETE CASCADE,
			document TEXT NOT NULL,
			company_name TEXT NOT NULL,
			campaign TEXT NOT NULL,
			advisor TEXT NOT NULL,
			priority TEXT NOT NULL,
			contactability TEXT NOT NULL,
			operator TEXT NOT NULL,
			total_debt REAL,
			admin_fee REAL,
			rec_planillas REAL,
			rec_gastos REAL,
			planillas_paid_at TIMESTAMP,
			gastos_paid_at TIMESTAMP,
			last_action_at TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_load ON records(load_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_campaign ON records(load_id, campaign)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// LoadInfo describes one persisted snapshot.
type LoadInfo struct {
	LoadedAt    time.Time
	Source      string
	ID          int64
	RecordCount int
}
