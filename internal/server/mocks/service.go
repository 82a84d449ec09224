// Package mocks holds hand-maintained mocks in the moq shape for the server contracts.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
)

// DashboardServiceMock is a mock implementation of server.DashboardService
type DashboardServiceMock struct {
	// SourceNameFunc mocks the SourceName method
	SourceNameFunc func() string

	// SymbolFunc mocks the Symbol method
	SymbolFunc func() string

	// IntervalFunc mocks the Interval method
	IntervalFunc func() domain.Interval

	// LatestFunc mocks the Latest method
	LatestFunc func() (domain.Snapshot, bool)

	// HistorySinceFunc mocks the HistorySince method
	HistorySinceFunc func(ctx context.Context, since time.Time) ([]domain.Snapshot, error)

	// CombinedViewFunc mocks the CombinedView method
	CombinedViewFunc func(ctx context.Context, interval domain.Interval, limit int) (domain.Snapshot, error)

	calls struct {
		CombinedView []struct {
			Interval domain.Interval
			Limit    int
		}
		HistorySince []time.Time
	}
	lock sync.RWMutex
}

// SourceName calls SourceNameFunc
func (m *DashboardServiceMock) SourceName() string {
	return m.SourceNameFunc()
}

// Symbol calls SymbolFunc
func (m *DashboardServiceMock) Symbol() string {
	return m.SymbolFunc()
}

// Interval calls IntervalFunc
func (m *DashboardServiceMock) Interval() domain.Interval {
	return m.IntervalFunc()
}

// Latest calls LatestFunc
func (m *DashboardServiceMock) Latest() (domain.Snapshot, bool) {
	return m.LatestFunc()
}

// HistorySince calls HistorySinceFunc
func (m *DashboardServiceMock) HistorySince(ctx context.Context, since time.Time) ([]domain.Snapshot, error) {
	m.lock.Lock()
	m.calls.HistorySince = append(m.calls.HistorySince, since)
	m.lock.Unlock()
	return m.HistorySinceFunc(ctx, since)
}

// CombinedView calls CombinedViewFunc
func (m *DashboardServiceMock) CombinedView(ctx context.Context, interval domain.Interval, limit int) (domain.Snapshot, error) {
	m.lock.Lock()
	m.calls.CombinedView = append(m.calls.CombinedView, struct {
		Interval domain.Interval
		Limit    int
	}{interval, limit})
	m.lock.Unlock()
	return m.CombinedViewFunc(ctx, interval, limit)
}

// CombinedViewCalls returns the recorded CombinedView arguments
func (m *DashboardServiceMock) CombinedViewCalls() []struct {
	Interval domain.Interval
	Limit    int
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	out := make([]struct {
		Interval domain.Interval
		Limit    int
	}, len(m.calls.CombinedView))
	copy(out, m.calls.CombinedView)
	return out
}

// HistorySinceCalls returns the recorded HistorySince arguments
func (m *DashboardServiceMock) HistorySinceCalls() []time.Time {
	m.lock.RLock()
	defer m.lock.RUnlock()
	out := make([]time.Time, len(m.calls.HistorySince))
	copy(out, m.calls.HistorySince)
	return out
}

// SentimentFeedMock is a mock implementation of server.SentimentFeed
type SentimentFeedMock struct {
	// FetchLatestFunc mocks the FetchLatest method
	FetchLatestFunc func(ctx context.Context, limit int) ([]domain.SentimentCard, error)

	calls struct {
		FetchLatest []int
	}
	lock sync.RWMutex
}

// FetchLatest calls FetchLatestFunc
func (m *SentimentFeedMock) FetchLatest(ctx context.Context, limit int) ([]domain.SentimentCard, error) {
	m.lock.Lock()
	m.calls.FetchLatest = append(m.calls.FetchLatest, limit)
	m.lock.Unlock()
	return m.FetchLatestFunc(ctx, limit)
}

// FetchLatestCalls returns the recorded FetchLatest limits
func (m *SentimentFeedMock) FetchLatestCalls() []int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	out := make([]int, len(m.calls.FetchLatest))
	copy(out, m.calls.FetchLatest)
	return out
}
