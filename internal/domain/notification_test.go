package domain

import (
	"testing"

	"github.com/ayankousky/btc-dashboard/pkg/utils/tradeutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicLevel_Validate(t *testing.T) {
	assert.NoError(t, TopicLevel(MarketDataTopic).Validate())
	assert.NoError(t, TopicLevel(AlertTopic).Validate())
	assert.Error(t, TopicLevel("SOMETHING_ELSE").Validate())
}

func TestNewSnapshotNotification(t *testing.T) {
	s := &Snapshot{
		Symbol:   "BTCUSDT",
		Interval: Interval15m,
		Candles:  candlesFromCloses([]float64{50000, 50100}),
		Stats: &SnapshotStats{
			LastClose: 50100,
			Change1:   0.2,
		},
	}

	notification, err := NewSnapshotNotification(s)
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", notification.Symbol)
	assert.Equal(t, 50100.0, notification.Stats.LastClose)

	_, err = NewSnapshotNotification(nil)
	assert.Error(t, err)

	_, err = NewSnapshotNotification(&Snapshot{Symbol: "BTCUSDT"})
	assert.Error(t, err, "stats must be calculated first")
}

func TestFormatSnapshotAlert(t *testing.T) {
	thresholds := AlertThresholds{
		RSIOverbought: 70,
		RSIOversold:   30,
		Change1Pct:    2,
		Change20Pct:   5,
	}

	tests := []struct {
		name       string
		stats      *SnapshotStats
		wantAlert  bool
		wantInText string
	}{
		{
			name: "overbought rsi",
			stats: &SnapshotStats{
				LastRSI:   tradeutils.RSIValue{Value: 82.3, Valid: true},
				LastClose: 50000,
			},
			wantAlert:  true,
			wantInText: "overbought",
		},
		{
			name: "oversold rsi",
			stats: &SnapshotStats{
				LastRSI:   tradeutils.RSIValue{Value: 21.7, Valid: true},
				LastClose: 50000,
			},
			wantAlert:  true,
			wantInText: "oversold",
		},
		{
			name: "invalid rsi never alerts",
			stats: &SnapshotStats{
				LastRSI: tradeutils.RSIValue{Value: 99, Valid: false},
			},
			wantAlert: false,
		},
		{
			name: "sharp candle move",
			stats: &SnapshotStats{
				LastRSI: tradeutils.RSIValue{Value: 50, Valid: true},
				Change1: -2.4,
			},
			wantAlert:  true,
			wantInText: "-2.40",
		},
		{
			name: "quiet market",
			stats: &SnapshotStats{
				LastRSI:  tradeutils.RSIValue{Value: 55, Valid: true},
				Change1:  0.3,
				Change20: 1.1,
			},
			wantAlert: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Snapshot{Symbol: "BTCUSDT", Interval: Interval15m, Stats: tt.stats}
			message, hasAlert := FormatSnapshotAlert(s, thresholds)
			assert.Equal(t, tt.wantAlert, hasAlert)
			if tt.wantInText != "" {
				assert.Contains(t, message, tt.wantInText)
			}
		})
	}

	_, hasAlert := FormatSnapshotAlert(nil, thresholds)
	assert.False(t, hasAlert)
}
