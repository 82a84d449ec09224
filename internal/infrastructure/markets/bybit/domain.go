package bybit

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
)

const (
	// SpotAPIURL is the base URL for the Bybit v5 REST API
	SpotAPIURL = "https://api.bybit.com"

	// SpotWSUrl is the Bybit spot public websocket endpoint
	SpotWSUrl = "wss://stream.bybit.com/v5/public/spot"

	// FetchKlines is the endpoint to fetch candle data
	FetchKlines = "/v5/market/kline"
)

// klineIntervals maps dashboard interval tokens to Bybit interval strings
var klineIntervals = map[string]string{
	"1m":  "1",
	"5m":  "5",
	"15m": "15",
	"1h":  "60",
	"4h":  "240",
	"1d":  "D",
}

// KlineResponse represents the Bybit kline REST envelope.
// The list is served newest first and has to be reversed on conversion.
type KlineResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Category string     `json:"category"`
		Symbol   string     `json:"symbol"`
		List     [][]string `json:"list"`
	} `json:"result"`
	Time int64 `json:"time"`
}

// rowToCandle converts one kline row [start, open, high, low, close, volume, turnover]
func rowToCandle(row []string) (markets.Candle, error) {
	candle := markets.Candle{Closed: true}

	if len(row) < 6 {
		return candle, fmt.Errorf("kline row has %d fields, want at least 6", len(row))
	}

	startMs, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return candle, fmt.Errorf("invalid start time '%s': %w", row[0], err)
	}
	candle.OpenTime = time.Unix(0, startMs*int64(time.Millisecond))

	prices := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		value, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return candle, fmt.Errorf("invalid kline field %d '%s': %w", i, row[i], err)
		}
		prices[i-1] = value
	}

	candle.Open = prices[0]
	candle.High = prices[1]
	candle.Low = prices[2]
	candle.Close = prices[3]
	candle.Volume = prices[4]

	return candle, nil
}

// KlineEventDTO represents a kline push from the Bybit websocket API
type KlineEventDTO struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
	Data  []struct {
		Start    int64  `json:"start"`
		End      int64  `json:"end"`
		Interval string `json:"interval"`
		Open     string `json:"open"`
		Close    string `json:"close"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Volume   string `json:"volume"`
		Confirm  bool   `json:"confirm"`
	} `json:"data"`
}

// toCandles converts a websocket kline event to normalized candles
func (e KlineEventDTO) toCandles() ([]markets.Candle, error) {
	candles := make([]markets.Candle, 0, len(e.Data))

	for _, d := range e.Data {
		open, err := strconv.ParseFloat(d.Open, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid open '%s': %w", d.Open, err)
		}
		high, err := strconv.ParseFloat(d.High, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid high '%s': %w", d.High, err)
		}
		low, err := strconv.ParseFloat(d.Low, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid low '%s': %w", d.Low, err)
		}
		closePrice, err := strconv.ParseFloat(d.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid close '%s': %w", d.Close, err)
		}
		volume, err := strconv.ParseFloat(d.Volume, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid volume '%s': %w", d.Volume, err)
		}

		candles = append(candles, markets.Candle{
			OpenTime: time.Unix(0, d.Start*int64(time.Millisecond)),
			Open:     open,
			High:     high,
			Low:      low,
			Close:    closePrice,
			Volume:   volume,
			Closed:   d.Confirm,
		})
	}

	return candles, nil
}

// toNativeInterval translates a dashboard interval token to the Bybit form
func toNativeInterval(interval string) (string, error) {
	native, ok := klineIntervals[interval]
	if !ok {
		return "", fmt.Errorf("unsupported interval '%s'", interval)
	}
	return native, nil
}
