// Package markets defines the contract the dashboard uses to read candle
// data from an exchange, plus the normalized candle type the adapters emit.
package markets

import (
	"context"
	"time"
)

// Candle represents a single kline imported from a market source
type Candle struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64

	// Closed reports whether the bar is final. REST history is always
	// final; live stream updates flip this once the bar closes.
	Closed bool
}

// Source represents a market that can be queried for candle data
type Source interface {
	// GetName returns the name of the source
	// Required to create corresponding collections/tables etc
	GetName() string

	// FetchCandles fetches up to limit most recent candles for a symbol,
	// oldest first. The interval token follows the dashboard notation
	// (1m, 5m, 15m, 1h, 4h, 1d); adapters translate to their native form.
	FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]Candle, error)

	// SubscribeCandles subscribes to live kline updates for a symbol
	SubscribeCandles(ctx context.Context, symbol, interval string) (<-chan Candle, <-chan error)
}
