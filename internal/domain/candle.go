package domain

import (
	"errors"
	"time"
)

// Interval represents a supported candle interval
type Interval string

// Supported candle intervals. The set mirrors what every wired market
// source can serve; anything else is rejected before a request is built.
const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval1d  Interval = "1d"
)

// DefaultInterval is used when a request does not specify one
const DefaultInterval = Interval15m

var supportedIntervals = map[Interval]time.Duration{
	Interval1m:  time.Minute,
	Interval5m:  5 * time.Minute,
	Interval15m: 15 * time.Minute,
	Interval1h:  time.Hour,
	Interval4h:  4 * time.Hour,
	Interval1d:  24 * time.Hour,
}

// Validate checks the interval against the supported set
func (i Interval) Validate() error {
	if _, ok := supportedIntervals[i]; !ok {
		return ValidationError{Field: "interval", Err: errors.New("unsupported interval: " + string(i))}
	}
	return nil
}

// Duration returns the wall-clock length of one candle, 0 if unsupported
func (i Interval) Duration() time.Duration {
	return supportedIntervals[i]
}

func (i Interval) String() string {
	return string(i)
}

// Candle represents a single OHLCV bar as served to the dashboard chart
type Candle struct {
	OpenTime time.Time `db:"open_time" json:"time" bson:"open_time"`
	Open     float64   `db:"open" json:"open" bson:"open"`
	High     float64   `db:"high" json:"high" bson:"high"`
	Low      float64   `db:"low" json:"low" bson:"low"`
	Close    float64   `db:"close" json:"close" bson:"close"`
	Volume   float64   `db:"volume" json:"volume" bson:"volume"`
}

// Validate checks the candle for data a source should never emit
func (c Candle) Validate() error {
	if c.OpenTime.IsZero() {
		return ValidationError{Field: "open_time", Err: errors.New("open time is required")}
	}
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return ValidationError{Field: "price", Err: errors.New("prices must be positive")}
	}
	if c.High < c.Low {
		return ValidationError{Field: "price", Err: errors.New("high below low")}
	}
	if c.Volume < 0 {
		return ValidationError{Field: "volume", Err: errors.New("volume must not be negative")}
	}
	return nil
}

// Closes extracts the close series from a candle slice, oldest first
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
