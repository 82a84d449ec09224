package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/ayankousky/btc-dashboard/internal/server/mocks"
	"github.com/ayankousky/btc-dashboard/pkg/utils/tradeutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSnapshot() domain.Snapshot {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domain.Snapshot{
		ID:       "BTCUSDT:15m:1748779200000",
		Symbol:   "BTCUSDT",
		Interval: domain.Interval15m,
		StartAt:  base,
		Candles: []domain.Candle{
			{OpenTime: base, Open: 50000, High: 50100, Low: 49900, Close: 50050, Volume: 10},
			{OpenTime: base.Add(15 * time.Minute), Open: 50050, High: 50200, Low: 50000, Close: 50150, Volume: 12},
		},
		RSI: []tradeutils.RSIValue{
			{},
			{Value: 55.5, Valid: true},
		},
		Stats: &domain.SnapshotStats{
			LastClose:    50150,
			LastRSI:      tradeutils.RSIValue{Value: 55.5, Valid: true},
			CandlesCount: 2,
		},
	}
}

func defaultServiceMock() *mocks.DashboardServiceMock {
	return &mocks.DashboardServiceMock{
		SourceNameFunc: func() string { return "Binance spot" },
		SymbolFunc:     func() string { return "BTCUSDT" },
		IntervalFunc:   func() domain.Interval { return domain.Interval15m },
		LatestFunc: func() (domain.Snapshot, bool) {
			return testSnapshot(), true
		},
		HistorySinceFunc: func(_ context.Context, _ time.Time) ([]domain.Snapshot, error) {
			return []domain.Snapshot{testSnapshot()}, nil
		},
		CombinedViewFunc: func(_ context.Context, interval domain.Interval, _ int) (domain.Snapshot, error) {
			s := testSnapshot()
			s.Interval = interval
			return s, nil
		},
	}
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(nil, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestGetHealth(t *testing.T) {
	s, err := New(defaultServiceMock(), nil, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(t, s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Binance spot", body["source"])
	assert.Equal(t, "BTCUSDT", body["symbol"])
	assert.Equal(t, "15m", body["interval"])
}

func TestGetCombined(t *testing.T) {
	service := defaultServiceMock()
	s, err := New(service, nil, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(t, s, "/api/combined?interval=1h&limit=50")
	require.Equal(t, http.StatusOK, rec.Code)

	calls := service.CombinedViewCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.Interval1h, calls[0].Interval)
	assert.Equal(t, 50, calls[0].Limit)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1h", body["interval"])

	rsi, ok := body["rsi"].([]any)
	require.True(t, ok)
	require.Len(t, rsi, 2)
	assert.Nil(t, rsi[0], "undefined rsi entries serialize as null")
	assert.InDelta(t, 55.5, rsi[1], 0.0001)
}

func TestGetCombined_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"unknown interval", "/api/combined?interval=2w"},
		{"negative limit", "/api/combined?limit=-5"},
		{"non-numeric limit", "/api/combined?limit=abc"},
	}

	s, err := New(defaultServiceMock(), nil, zap.NewNop())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetCombined_UpstreamFailure(t *testing.T) {
	service := defaultServiceMock()
	service.CombinedViewFunc = func(_ context.Context, _ domain.Interval, _ int) (domain.Snapshot, error) {
		return domain.Snapshot{}, errors.New("upstream down")
	}

	s, err := New(service, nil, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(t, s, "/api/combined")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetRSI(t *testing.T) {
	s, err := New(defaultServiceMock(), nil, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(t, s, "/api/rsi")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BTCUSDT", body["symbol"])
	assert.InDelta(t, 55.5, body["last"], 0.0001)
}

func TestGetRSI_NoSnapshot(t *testing.T) {
	service := defaultServiceMock()
	service.LatestFunc = func() (domain.Snapshot, bool) {
		return domain.Snapshot{}, false
	}

	s, err := New(service, nil, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(t, s, "/api/rsi")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSentiment(t *testing.T) {
	feed := &mocks.SentimentFeedMock{
		FetchLatestFunc: func(_ context.Context, _ int) ([]domain.SentimentCard, error) {
			return []domain.SentimentCard{
				{Value: 40, Classification: "Fear", At: time.Unix(1719792000, 0).UTC()},
			}, nil
		},
	}

	s, err := New(defaultServiceMock(), feed, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(t, s, "/api/sentiment?limit=500")
	require.Equal(t, http.StatusOK, rec.Code)

	// oversized limits are capped before hitting the feed
	calls := feed.FetchLatestCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, maxSentimentLimit, calls[0])

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	cards, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, cards, 1)
}

func TestGetSentiment_NotConfigured(t *testing.T) {
	s, err := New(defaultServiceMock(), nil, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(t, s, "/api/sentiment")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetSnapshots(t *testing.T) {
	service := defaultServiceMock()
	s, err := New(service, nil, zap.NewNop())
	require.NoError(t, err)

	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rec := doRequest(t, s, "/api/snapshots?since="+since.Format(time.RFC3339))
	require.Equal(t, http.StatusOK, rec.Code)

	calls := service.HistorySinceCalls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Equal(since))
}

func TestGetSnapshots_BadSince(t *testing.T) {
	s, err := New(defaultServiceMock(), nil, zap.NewNop())
	require.NoError(t, err)

	rec := doRequest(t, s, "/api/snapshots?since=yesterday")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
