package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
)

// Snapshot is a repository for market snapshots.
// The snapshot document is stored as JSON next to its query columns.
type Snapshot struct {
	db *sql.DB
}

func (r *Snapshot) init() error {
	snapshotTable := `
	CREATE TABLE IF NOT EXISTS snapshots (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  symbol TEXT,
	  start_at DATETIME,
	  created_at DATETIME,
	  snapshot_json TEXT
	);
	`
	if _, err := r.db.Exec(snapshotTable); err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return nil
}

// Create inserts a new snapshot into the database
func (r *Snapshot) Create(ctx context.Context, s domain.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	query := `INSERT INTO snapshots (symbol, start_at, created_at, snapshot_json) VALUES (?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, s.Symbol, s.StartAt, s.CreatedAt, string(data))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// GetHistorySince returns all snapshots created since the given time
func (r *Snapshot) GetHistorySince(ctx context.Context, since time.Time) ([]domain.Snapshot, error) {
	query := `SELECT snapshot_json FROM snapshots WHERE created_at >= ? ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var history []domain.Snapshot
	for rows.Next() {
		var snapshotJSON string
		if err := rows.Scan(&snapshotJSON); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		var s domain.Snapshot
		if err := json.Unmarshal([]byte(snapshotJSON), &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		history = append(history, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}
	return history, nil
}
