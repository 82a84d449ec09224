// Package sqlite implements snapshot persistence on SQLite.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/ayankousky/btc-dashboard/internal/domain"

	// register the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// Factory implements a repository factory using SQLite
type Factory struct {
	db *sql.DB
}

// NewSQLiteRepoFactory opens (or creates) a SQLite database file (dsn)
// and creates the necessary tables if they do not exist.
func NewSQLiteRepoFactory(dsn string) (*Factory, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	return &Factory{db: db}, nil
}

// GetSnapshotRepository returns a SnapshotRepository instance
func (f *Factory) GetSnapshotRepository(_ string) (domain.SnapshotRepository, error) {
	repo := &Snapshot{db: f.db}
	if err := repo.init(); err != nil {
		return nil, err
	}
	return repo, nil
}
