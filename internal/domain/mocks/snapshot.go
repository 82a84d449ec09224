// Package mocks holds hand-maintained mocks in the moq shape.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
)

// SnapshotRepositoryMock is a mock implementation of domain.SnapshotRepository
type SnapshotRepositoryMock struct {
	// CreateFunc mocks the Create method
	CreateFunc func(ctx context.Context, s domain.Snapshot) error

	// GetHistorySinceFunc mocks the GetHistorySince method
	GetHistorySinceFunc func(ctx context.Context, since time.Time) ([]domain.Snapshot, error)

	calls struct {
		Create          []domain.Snapshot
		GetHistorySince []time.Time
	}
	lock sync.RWMutex
}

// Create calls CreateFunc
func (m *SnapshotRepositoryMock) Create(ctx context.Context, s domain.Snapshot) error {
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, s)
	m.lock.Unlock()
	return m.CreateFunc(ctx, s)
}

// GetHistorySince calls GetHistorySinceFunc
func (m *SnapshotRepositoryMock) GetHistorySince(ctx context.Context, since time.Time) ([]domain.Snapshot, error) {
	m.lock.Lock()
	m.calls.GetHistorySince = append(m.calls.GetHistorySince, since)
	m.lock.Unlock()
	return m.GetHistorySinceFunc(ctx, since)
}

// CreateCalls returns the snapshots passed to Create so far
func (m *SnapshotRepositoryMock) CreateCalls() []domain.Snapshot {
	m.lock.RLock()
	defer m.lock.RUnlock()
	out := make([]domain.Snapshot, len(m.calls.Create))
	copy(out, m.calls.Create)
	return out
}

// GetHistorySinceCalls returns the arguments passed to GetHistorySince so far
func (m *SnapshotRepositoryMock) GetHistorySinceCalls() []time.Time {
	m.lock.RLock()
	defer m.lock.RUnlock()
	out := make([]time.Time, len(m.calls.GetHistorySince))
	copy(out, m.calls.GetHistorySince)
	return out
}
