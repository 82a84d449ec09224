package binance

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
)

const (
	// SpotAPIURL is the base URL for the Binance spot REST API
	SpotAPIURL = "https://api.binance.com/api/v3"

	// SpotWSUrl is the base URL for the Binance spot websocket streams
	SpotWSUrl = "wss://stream.binance.com:9443/ws"

	// FetchKlines is the endpoint to fetch candle data
	FetchKlines = "/klines"
)

// klineIntervals maps dashboard interval tokens to Binance interval strings
var klineIntervals = map[string]string{
	"1m":  "1m",
	"5m":  "5m",
	"15m": "15m",
	"1h":  "1h",
	"4h":  "4h",
	"1d":  "1d",
}

// KlineDTO represents one kline row from the Binance REST API:
// [openTime, open, high, low, close, volume, closeTime, ...]
type KlineDTO []any

// toCandle converts a KlineDTO to a markets.Candle
func (k KlineDTO) toCandle() (markets.Candle, error) {
	candle := markets.Candle{Closed: true}

	if len(k) < 6 {
		return candle, fmt.Errorf("kline row has %d fields, want at least 6", len(k))
	}

	openTime, ok := k[0].(float64)
	if !ok {
		return candle, fmt.Errorf("invalid openTime '%v'", k[0])
	}
	candle.OpenTime = time.Unix(0, int64(openTime)*int64(time.Millisecond))

	prices := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		raw, ok := k[i].(string)
		if !ok {
			return candle, fmt.Errorf("invalid kline field %d '%v'", i, k[i])
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return candle, fmt.Errorf("invalid kline field %d '%s': %w", i, raw, err)
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

// KlineEventDTO represents a kline event from the Binance WebSocket API
type KlineEventDTO struct {
	EventType string `json:"e"`
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	Kline     struct {
		StartTime int64  `json:"t"`
		EndTime   int64  `json:"T"`
		Interval  string `json:"i"`
		Open      string `json:"o"`
		Close     string `json:"c"`
		High      string `json:"h"`
		Low       string `json:"l"`
		Volume    string `json:"v"`
		IsClosed  bool   `json:"x"`
	} `json:"k"`
}

// toCandle converts a KlineEventDTO to a markets.Candle
func (e KlineEventDTO) toCandle() (markets.Candle, error) {
	candle := markets.Candle{}

	open, err := strconv.ParseFloat(e.Kline.Open, 64)
	if err != nil {
		return candle, fmt.Errorf("invalid open '%s': %w", e.Kline.Open, err)
	}
	high, err := strconv.ParseFloat(e.Kline.High, 64)
	if err != nil {
		return candle, fmt.Errorf("invalid high '%s': %w", e.Kline.High, err)
	}
	low, err := strconv.ParseFloat(e.Kline.Low, 64)
	if err != nil {
		return candle, fmt.Errorf("invalid low '%s': %w", e.Kline.Low, err)
	}
	closePrice, err := strconv.ParseFloat(e.Kline.Close, 64)
	if err != nil {
		return candle, fmt.Errorf("invalid close '%s': %w", e.Kline.Close, err)
	}
	volume, err := strconv.ParseFloat(e.Kline.Volume, 64)
	if err != nil {
		return candle, fmt.Errorf("invalid volume '%s': %w", e.Kline.Volume, err)
	}

	candle.OpenTime = time.Unix(0, e.Kline.StartTime*int64(time.Millisecond))
	candle.Open = open
	candle.High = high
	candle.Low = low
	candle.Close = closePrice
	candle.Volume = volume
	candle.Closed = e.Kline.IsClosed

	return candle, nil
}

// toNativeInterval translates a dashboard interval token to the Binance form
func toNativeInterval(interval string) (string, error) {
	native, ok := klineIntervals[interval]
	if !ok {
		return "", fmt.Errorf("unsupported interval '%s'", interval)
	}
	return native, nil
}
