// Package sqlite is an append-only journal of ledger events kept in a SQLite
// file. Rows are read back in insertion order when the ledger replays.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mmynk/splitbook/internal/storage"
)

var _ storage.Journal = (*SQLiteJournal)(nil)

// SQLiteJournal appends users, groups, memberships and expenses to SQLite.
type SQLiteJournal struct {
	db *sql.DB
}

// New opens the journal at dbPath, creating the file, its directory and the
// schema when missing.
func New(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	// Single writer. Replay also relies on one connection keeping the pragma.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// Close closes the journal file.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
