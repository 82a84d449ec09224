package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
)

// maxStored bounds the in-memory history so long runs do not grow without limit
const maxStored = 10_000

// SnapshotRepository stores snapshots in memory
type SnapshotRepository struct {
	snapshots []domain.Snapshot
	mu        sync.RWMutex
}

// Create appends a snapshot, evicting the oldest entries past the cap
func (r *SnapshotRepository) Create(_ context.Context, s domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots = append(r.snapshots, s)
	if len(r.snapshots) > maxStored {
		r.snapshots = r.snapshots[len(r.snapshots)-maxStored:]
	}
	return nil
}

// GetHistorySince returns snapshots created since the given time, oldest first
func (r *SnapshotRepository) GetHistorySince(_ context.Context, since time.Time) ([]domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := make([]domain.Snapshot, 0)
	for _, s := range r.snapshots {
		if s.CreatedAt.Before(since) {
			continue
		}
		history = append(history, s)
	}
	return history, nil
}
