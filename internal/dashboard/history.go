package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/ayankousky/btc-dashboard/pkg/utils"
)

// snapshotHistory keeps the recent completed snapshots in a ring buffer
// plus the live-folded view built from stream updates. The live view is
// cleared whenever a full refresh supersedes it.
type snapshotHistory struct {
	buffer *utils.RingBuffer[domain.Snapshot]

	mu   sync.RWMutex
	live *domain.Snapshot
}

func newSnapshotHistory(size int) *snapshotHistory {
	return &snapshotHistory{
		buffer: utils.NewRingBuffer[domain.Snapshot](size),
	}
}

// Push records a completed refresh and drops the live view it supersedes
func (h *snapshotHistory) Push(s domain.Snapshot) {
	h.mu.Lock()
	h.live = nil
	h.mu.Unlock()

	h.buffer.Push(s)
}

// SetLive replaces the live-folded view
func (h *snapshotHistory) SetLive(s domain.Snapshot) {
	h.mu.Lock()
	h.live = &s
	h.mu.Unlock()
}

// Latest returns the live view if present, otherwise the newest refresh
func (h *snapshotHistory) Latest() (domain.Snapshot, bool) {
	h.mu.RLock()
	if h.live != nil {
		s := *h.live
		h.mu.RUnlock()
		return s, true
	}
	h.mu.RUnlock()

	return h.buffer.Last()
}

// Len returns the number of completed snapshots kept in memory
func (h *snapshotHistory) Len() int {
	return h.buffer.Len()
}

// initHistory loads stored snapshots and populates the ring buffer
func (d *Dashboard) initHistory(ctx context.Context) error {
	since := time.Now().Add(-time.Duration(domain.MaxSnapshotHistory) * d.interval.Duration())
	history, err := d.snapshotRepo.GetHistorySince(ctx, since)
	if err != nil {
		return fmt.Errorf("GetHistorySince failed: %w", err)
	}

	for _, snapshot := range history {
		d.history.buffer.Push(snapshot)
	}

	return nil
}
