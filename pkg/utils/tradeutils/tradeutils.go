// Package tradeutils provides technical-analysis helpers shared across services.
package tradeutils

import (
	"encoding/json"
	"fmt"
)

// DefaultRSIWindow is the lookback window used when the caller does not care
const DefaultRSIWindow = 14

// RSIValue is a single indicator sample positionally aligned with its source close.
// Valid is false while the seed window is still filling.
type RSIValue struct {
	Value float64
	Valid bool
}

// MarshalJSON renders invalid samples as null so chart consumers can skip them
func (v RSIValue) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

// UnmarshalJSON accepts either a number or null
func (v *RSIValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = RSIValue{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = RSIValue{Value: f, Valid: true}
	return nil
}

// RSI calculates the Relative Strength Index over a close series using
// Wilder's smoothing. The result has exactly the same length as the input;
// the first window+1 entries are always invalid because the smoothing state
// needs a full seed window plus one more close before the first reading.
//
// Two quirks are kept for compatibility with the dashboard's historical
// output and must not be "fixed":
//   - a zero delta counts as a gain of 0 (d >= 0 routes to the gain bucket);
//   - when the average loss is 0 the relative strength divides by 1 instead
//     of producing +Inf, so an all-gain series reads 100*g/(1+g) rather than
//     pinning to 100, and a perfectly flat series reads 0.
//
// The input slice is never modified. Series shorter than window+2 closes
// produce an all-invalid result of matching length without error.
func RSI(closes []float64, window int) ([]RSIValue, error) {
	if window < 1 {
		return nil, fmt.Errorf("rsi window must be a positive integer, got %d", window)
	}

	result := make([]RSIValue, len(closes))
	if len(closes) < 2 {
		return result, nil
	}

	deltas := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		deltas[i-1] = closes[i] - closes[i-1]
	}
	if len(deltas) < window {
		return result, nil
	}

	// Seed phase: simple averages over the first full window of deltas
	var sumGain, sumLoss float64
	for _, d := range deltas[:window] {
		if d >= 0 {
			sumGain += d
		} else {
			sumLoss += -d
		}
	}
	avgGain := sumGain / float64(window)
	avgLoss := sumLoss / float64(window)

	// Rolling phase: Wilder smoothing, one reading per delta past the seed
	for i := window; i < len(deltas); i++ {
		d := deltas[i]
		if d >= 0 {
			avgGain = (avgGain*float64(window-1) + d) / float64(window)
			avgLoss = avgLoss * float64(window-1) / float64(window)
		} else {
			avgGain = avgGain * float64(window-1) / float64(window)
			avgLoss = (avgLoss*float64(window-1) - d) / float64(window)
		}

		divisor := avgLoss
		if divisor == 0 {
			divisor = 1
		}
		rs := avgGain / divisor

		result[i+1] = RSIValue{Value: 100 - 100/(1+rs), Valid: true}
	}

	return result, nil
}
