// Package memory implements snapshot persistence in process memory.
// Useful for local runs and tests where durability does not matter.
package memory

import "github.com/ayankousky/btc-dashboard/internal/domain"

// InMemoryRepoFactory is a factory for in-memory repositories
type InMemoryRepoFactory struct{}

// NewInMemoryRepoFactory creates a new InMemoryRepoFactory
func NewInMemoryRepoFactory() *InMemoryRepoFactory {
	return &InMemoryRepoFactory{}
}

// GetSnapshotRepository returns a new in-memory SnapshotRepository
func (f *InMemoryRepoFactory) GetSnapshotRepository(_ string) (domain.SnapshotRepository, error) {
	return &SnapshotRepository{
		snapshots: make([]domain.Snapshot, 0),
	}, nil
}
