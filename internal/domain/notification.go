package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// MarketDataTopic is the event type for snapshot data pushed to bots
	MarketDataTopic = "MARKET_DATA"

	// AlertTopic is the event triggered when the market crosses a configured threshold
	AlertTopic = "ALERT_MARKET_STATE"
)

// TopicLevel represents a notification topic
type TopicLevel string

// Validate checks if the topic exists
func (t TopicLevel) Validate() error {
	switch t {
	case MarketDataTopic, AlertTopic:
		return nil
	default:
		return fmt.Errorf("invalid topic: '%s'", t)
	}
}

func (t TopicLevel) String() string {
	return string(t)
}

// SnapshotNotification is a snapshot event without the heavy series payload
type SnapshotNotification struct {
	Symbol   string        `json:"symbol"`
	Interval Interval      `json:"interval"`
	Stats    SnapshotStats `json:"stats"`
}

// NewSnapshotNotification builds a light event from a full snapshot
func NewSnapshotNotification(s *Snapshot) (*SnapshotNotification, error) {
	if s == nil {
		return nil, errors.New("snapshot cannot be nil")
	}
	if s.Stats == nil {
		return nil, errors.New("snapshot stats are not calculated")
	}

	return &SnapshotNotification{
		Symbol:   s.Symbol,
		Interval: s.Interval,
		Stats:    *s.Stats,
	}, nil
}

// AlertThresholds defines when a snapshot becomes worth an alert
type AlertThresholds struct {
	RSIOverbought float64 // latest RSI at or above this value
	RSIOversold   float64 // latest RSI at or below this value
	Change1Pct    float64 // absolute % change vs the previous candle
	Change20Pct   float64 // absolute % change vs 20 candles back
}

// FormatSnapshotAlert formats a snapshot into a readable alert message.
// The second return value reports whether any threshold was crossed.
func FormatSnapshotAlert(s *Snapshot, thresholds AlertThresholds) (string, bool) {
	if s == nil || s.Stats == nil {
		return "", false
	}

	var lines []string
	hasAlert := false

	if s.Stats.LastRSI.Valid && thresholds.RSIOverbought > 0 && s.Stats.LastRSI.Value >= thresholds.RSIOverbought {
		hasAlert = true
		lines = append(lines, fmt.Sprintf("📈 <b>%s overbought</b>\nRSI: %.1f", s.Symbol, s.Stats.LastRSI.Value))
	}
	if s.Stats.LastRSI.Valid && thresholds.RSIOversold > 0 && s.Stats.LastRSI.Value <= thresholds.RSIOversold {
		hasAlert = true
		lines = append(lines, fmt.Sprintf("📉 <b>%s oversold</b>\nRSI: %.1f", s.Symbol, s.Stats.LastRSI.Value))
	}
	if thresholds.Change1Pct > 0 && math.Abs(s.Stats.Change1) >= thresholds.Change1Pct {
		hasAlert = true
		lines = append(lines, fmt.Sprintf("⚠️ <b>Significant Move</b>\nChange %s: %s%%", s.Interval, signed(s.Stats.Change1)))
	}
	if thresholds.Change20Pct > 0 && math.Abs(s.Stats.Change20) >= thresholds.Change20Pct {
		hasAlert = true
		lines = append(lines, fmt.Sprintf("Change 20x%s: %s%%", s.Interval, signed(s.Stats.Change20)))
	}

	if !hasAlert {
		return "", false
	}

	lines = append(lines, fmt.Sprintf("Last close: %.2f", s.Stats.LastClose))
	return strings.Join(lines, "\n"), true
}

func signed(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
