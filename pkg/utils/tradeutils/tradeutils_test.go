package tradeutils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFrom(t *testing.T, result []RSIValue) int {
	t.Helper()
	for i, v := range result {
		if v.Valid {
			return i
		}
	}
	return -1
}

func TestRSI_LengthInvariant(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		window int
	}{
		{name: "empty input", closes: []float64{}, window: 14},
		{name: "single close", closes: []float64{100}, window: 14},
		{name: "shorter than window", closes: []float64{1, 2, 3}, window: 14},
		{name: "exactly window+1", closes: make([]float64, 15), window: 14},
		{name: "long series", closes: make([]float64, 500), window: 14},
		{name: "window 1", closes: []float64{1, 2, 3, 4}, window: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RSI(tt.closes, tt.window)
			require.NoError(t, err)
			assert.Equal(t, len(tt.closes), len(result))
		})
	}
}

func TestRSI_LeadingInvalidEntries(t *testing.T) {
	closes := []float64{44, 44.25, 44.5, 43.75, 44.65, 45.1, 45.4, 46.2, 46, 45.4, 46, 46.5, 46.3, 45.8, 45.5, 46.9, 47.1, 46.8}
	window := 14

	result, err := RSI(closes, window)
	require.NoError(t, err)

	for i := 0; i <= window; i++ {
		assert.False(t, result[i].Valid, "entry %d should be invalid", i)
	}
	for i := window + 1; i < len(result); i++ {
		assert.True(t, result[i].Valid, "entry %d should be valid", i)
	}
}

func TestRSI_ShortSeriesAllInvalid(t *testing.T) {
	// Exactly window+1 closes yields a full seed but zero rolling readings
	closes := []float64{44, 44.25, 44.5, 43.75, 44.65, 45.1, 45.4, 46.2, 46, 45.4, 46, 46.5, 46.3, 45.8, 45.5}
	require.Len(t, closes, 15)

	result, err := RSI(closes, 14)
	require.NoError(t, err)
	require.Len(t, result, 15)
	for i, v := range result {
		assert.False(t, v.Valid, "entry %d should be invalid", i)
	}
}

func TestRSI_ConcreteScenario(t *testing.T) {
	closes := []float64{44, 44.25, 44.5, 43.75, 44.65, 45.1, 45.4, 46.2, 46, 45.4, 46, 46.5, 46.3, 45.8, 45.5, 46.9}

	result, err := RSI(closes, 14)
	require.NoError(t, err)
	require.Len(t, result, 16)

	for i := 0; i < 15; i++ {
		assert.False(t, result[i].Valid, "entry %d should be invalid", i)
	}

	last := result[15]
	require.True(t, last.Valid)
	assert.Greater(t, last.Value, 50.0, "a positive incremental delta should read above 50")
	assert.InDelta(t, 68.5485, last.Value, 0.01)
}

func TestRSI_BoundedRange(t *testing.T) {
	closes := []float64{44, 52, 41, 60, 39, 70, 35, 80, 30, 90, 25, 100, 20, 110, 15, 120, 10, 130, 5, 140}

	result, err := RSI(closes, 5)
	require.NoError(t, err)

	for i, v := range result {
		if !v.Valid {
			continue
		}
		assert.GreaterOrEqual(t, v.Value, 0.0, "entry %d below range", i)
		assert.LessOrEqual(t, v.Value, 100.0, "entry %d above range", i)
	}
}

func TestRSI_FlatSeriesReadsZero(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 50000
	}

	result, err := RSI(closes, 14)
	require.NoError(t, err)

	first := validFrom(t, result)
	require.Equal(t, 15, first)
	for i := first; i < len(result); i++ {
		// avgGain == avgLoss == 0, rs = 0/1 = 0, so 100 - 100/(1+0) = 0
		assert.Equal(t, 0.0, result[i].Value, "entry %d", i)
	}
}

func TestRSI_StrictlyRisingSeries(t *testing.T) {
	// Constant step c keeps avgLoss at 0, so rs = avgGain = c by the
	// divide-by-one rule and every reading equals 100*c/(1+c) exactly.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 1000 + float64(i)
	}

	result, err := RSI(closes, 14)
	require.NoError(t, err)

	for i := 15; i < len(result); i++ {
		require.True(t, result[i].Valid, "entry %d", i)
		assert.Equal(t, 50.0, result[i].Value, "step of 1 reads 100*1/(1+1)")
	}
}

func TestRSI_StrictlyFallingSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 1000 - float64(i)
	}

	result, err := RSI(closes, 14)
	require.NoError(t, err)

	for i := 15; i < len(result); i++ {
		require.True(t, result[i].Valid, "entry %d", i)
		assert.Equal(t, 0.0, result[i].Value, "pure downward movement reads 0")
	}
}

func TestRSI_InvalidWindow(t *testing.T) {
	tests := []struct {
		name   string
		window int
	}{
		{name: "zero window", window: 0},
		{name: "negative window", window: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RSI([]float64{1, 2, 3}, tt.window)
			assert.Error(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestRSI_DoesNotMutateInput(t *testing.T) {
	closes := []float64{44, 44.25, 44.5, 43.75, 44.65, 45.1, 45.4, 46.2, 46, 45.4, 46, 46.5, 46.3, 45.8, 45.5, 46.9}
	original := make([]float64, len(closes))
	copy(original, closes)

	_, err := RSI(closes, 14)
	require.NoError(t, err)
	assert.Equal(t, original, closes)
}

func TestRSI_Deterministic(t *testing.T) {
	closes := []float64{44, 52, 41, 60, 39, 70, 35, 80, 30, 90, 25, 100, 20, 110, 15, 120}

	first, err := RSI(closes, 5)
	require.NoError(t, err)
	second, err := RSI(closes, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRSIValue_JSON(t *testing.T) {
	series := []RSIValue{
		{},
		{Value: 68.5, Valid: true},
	}

	data, err := json.Marshal(series)
	require.NoError(t, err)
	assert.JSONEq(t, `[null, 68.5]`, string(data))

	var decoded []RSIValue
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, series, decoded)
}
