package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayankousky/btc-dashboard/pkg/utils/mathutils"
	"github.com/ayankousky/btc-dashboard/pkg/utils/tradeutils"
)

// MaxSnapshotHistory is how many snapshots the service keeps in memory
const MaxSnapshotHistory = 120

// statsTailWindow is how many candles back the 20-candle stats look
const statsTailWindow = 20

// Snapshot represents one refresh of the dashboard market view: the candle
// series fetched from a source plus the indicator series derived from it.
// This item is stored in the database and served over the HTTP API.
type Snapshot struct {
	ID        string    `db:"_id" json:"_id" bson:"_id"`
	Symbol    string    `db:"symbol" json:"symbol" bson:"symbol"`
	Interval  Interval  `db:"interval" json:"interval" bson:"interval"`
	StartAt   time.Time `db:"start_at" json:"start_at" bson:"start_at"`       // handling start at
	FetchedAt time.Time `db:"fetched_at" json:"fetched_at" bson:"fetched_at"` // fetched from source at
	CreatedAt time.Time `db:"created_at" json:"created_at" bson:"created_at"` // ready to be stored at

	FetchDuration    int64 `db:"fetch_duration" json:"fetch_duration" bson:"fetch_duration"`
	HandlingDuration int64 `db:"handling_duration" json:"handling_duration" bson:"handling_duration"`

	Candles []Candle              `db:"candles" json:"data" bson:"candles"`
	RSI     []tradeutils.RSIValue `db:"rsi" json:"rsi" bson:"rsi"`

	Stats *SnapshotStats `db:"stats" json:"stats" bson:"stats"`
}

// SnapshotStats carries the derived numbers the dashboard header renders
type SnapshotStats struct {
	LastClose    float64              `db:"last_close" json:"last_close" bson:"last_close"`
	Change1      float64              `db:"change_1" json:"change_1" bson:"change_1"`    // % change vs previous candle
	Change20     float64              `db:"change_20" json:"change_20" bson:"change_20"` // % change vs 20 candles back
	Max20        float64              `db:"max_20" json:"max_20" bson:"max_20"`
	Min20        float64              `db:"min_20" json:"min_20" bson:"min_20"`
	LastRSI      tradeutils.RSIValue  `db:"last_rsi" json:"last_rsi" bson:"last_rsi"`
	CandlesCount int16                `db:"candles_count" json:"candles_count" bson:"candles_count"`
}

// SnapshotRepository represents the snapshot repository contract
type SnapshotRepository interface {
	Create(ctx context.Context, s Snapshot) error
	GetHistorySince(ctx context.Context, since time.Time) ([]Snapshot, error)
}

// CalculateIndicators derives the RSI series and header stats from the
// candle series. It never touches the candles themselves; callers can
// re-run it after appending a live candle update.
func (s *Snapshot) CalculateIndicators(rsiWindow int) error {
	rsi, err := tradeutils.RSI(Closes(s.Candles), rsiWindow)
	if err != nil {
		return fmt.Errorf("calculating rsi series: %w", err)
	}
	s.RSI = rsi

	stats := &SnapshotStats{
		CandlesCount: int16(len(s.Candles)),
	}
	if len(rsi) > 0 {
		stats.LastRSI = rsi[len(rsi)-1]
	}

	if n := len(s.Candles); n > 0 {
		last := s.Candles[n-1]
		stats.LastClose = last.Close

		if n >= 2 {
			stats.Change1 = mathutils.PercDiff(last.Close, s.Candles[n-2].Close, 2)
		}

		tail := s.Candles
		if n > statsTailWindow {
			tail = s.Candles[n-statsTailWindow:]
		}
		stats.Change20 = mathutils.PercDiff(last.Close, tail[0].Close, 2)
		stats.Max20 = tail[0].High
		stats.Min20 = tail[0].Low
		for _, c := range tail[1:] {
			if c.High > stats.Max20 {
				stats.Max20 = c.High
			}
			if c.Low < stats.Min20 {
				stats.Min20 = c.Low
			}
		}
	}

	s.Stats = stats
	return nil
}

// Validate checks the snapshot before it is stored or published
func (s *Snapshot) Validate() error {
	if s.Symbol == "" {
		return ValidationError{Field: "symbol", Err: errors.New("symbol is required")}
	}
	if err := s.Interval.Validate(); err != nil {
		return err
	}
	if s.FetchedAt.IsZero() {
		return ValidationError{Field: "fetched_at", Err: errors.New("fetch time is required")}
	}
	if len(s.RSI) != len(s.Candles) {
		return ValidationError{Field: "rsi", Err: errors.New("rsi series is not aligned with candles")}
	}
	for i := 1; i < len(s.Candles); i++ {
		if !s.Candles[i].OpenTime.After(s.Candles[i-1].OpenTime) {
			return ValidationError{Field: "candles", Err: errors.New("candles must be in ascending order")}
		}
	}
	return nil
}
