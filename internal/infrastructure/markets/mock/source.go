// Package mock holds a hand-maintained markets.Source mock in the moq shape.
package mock

import (
	"context"
	"sync"

	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
)

// SourceMock is a mock implementation of markets.Source
type SourceMock struct {
	// GetNameFunc mocks the GetName method
	GetNameFunc func() string

	// FetchCandlesFunc mocks the FetchCandles method
	FetchCandlesFunc func(ctx context.Context, symbol, interval string, limit int) ([]markets.Candle, error)

	// SubscribeCandlesFunc mocks the SubscribeCandles method
	SubscribeCandlesFunc func(ctx context.Context, symbol, interval string) (<-chan markets.Candle, <-chan error)

	calls struct {
		FetchCandles int
	}
	lock sync.RWMutex
}

// GetName calls GetNameFunc
func (m *SourceMock) GetName() string {
	return m.GetNameFunc()
}

// FetchCandles calls FetchCandlesFunc
func (m *SourceMock) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]markets.Candle, error) {
	m.lock.Lock()
	m.calls.FetchCandles++
	m.lock.Unlock()
	return m.FetchCandlesFunc(ctx, symbol, interval, limit)
}

// SubscribeCandles calls SubscribeCandlesFunc
func (m *SourceMock) SubscribeCandles(ctx context.Context, symbol, interval string) (<-chan markets.Candle, <-chan error) {
	return m.SubscribeCandlesFunc(ctx, symbol, interval)
}

// FetchCandlesCallCount returns how many times FetchCandles was called
func (m *SourceMock) FetchCandlesCallCount() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.FetchCandles
}
