package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Validate(t *testing.T) {
	tests := []struct {
		name     string
		interval Interval
		wantErr  bool
	}{
		{name: "minute interval", interval: Interval1m},
		{name: "default interval", interval: DefaultInterval},
		{name: "daily interval", interval: Interval1d},
		{name: "unsupported interval", interval: Interval("3w"), wantErr: true},
		{name: "empty interval", interval: Interval(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.interval.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInterval_Duration(t *testing.T) {
	assert.Equal(t, 15*time.Minute, Interval15m.Duration())
	assert.Equal(t, time.Duration(0), Interval("bogus").Duration())
}

func TestCandle_Validate(t *testing.T) {
	valid := Candle{
		OpenTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Open:     50000,
		High:     50100,
		Low:      49900,
		Close:    50050,
		Volume:   12.5,
	}

	tests := []struct {
		name    string
		mutate  func(c *Candle)
		wantErr bool
	}{
		{name: "valid candle", mutate: func(c *Candle) {}},
		{name: "zero open time", mutate: func(c *Candle) { c.OpenTime = time.Time{} }, wantErr: true},
		{name: "negative close", mutate: func(c *Candle) { c.Close = -1 }, wantErr: true},
		{name: "zero open", mutate: func(c *Candle) { c.Open = 0 }, wantErr: true},
		{name: "high below low", mutate: func(c *Candle) { c.High = c.Low - 1 }, wantErr: true},
		{name: "negative volume", mutate: func(c *Candle) { c.Volume = -0.1 }, wantErr: true},
		{name: "zero volume is fine", mutate: func(c *Candle) { c.Volume = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCloses(t *testing.T) {
	candles := []Candle{
		{Close: 100},
		{Close: 101.5},
		{Close: 99},
	}
	assert.Equal(t, []float64{100, 101.5, 99}, Closes(candles))
	assert.Empty(t, Closes(nil))
}
