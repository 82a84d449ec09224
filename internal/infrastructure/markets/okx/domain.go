package okx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
)

const (
	// SpotAPIURL is the base URL for the OKX v5 REST API
	SpotAPIURL = "https://www.okx.com"

	// SpotWSUrl is the OKX business websocket endpoint serving candle channels
	SpotWSUrl = "wss://ws.okx.com:8443/ws/v5/business"

	// FetchCandlesEndpoint is the endpoint to fetch candle data
	FetchCandlesEndpoint = "/api/v5/market/candles"
)

// candleBars maps dashboard interval tokens to OKX bar strings
var candleBars = map[string]string{
	"1m":  "1m",
	"5m":  "5m",
	"15m": "15m",
	"1h":  "1H",
	"4h":  "4H",
	"1d":  "1D",
}

// CandleResponse represents the OKX candles REST envelope.
// Rows are served newest first: [ts, o, h, l, c, vol, volCcy, volCcyQuote, confirm]
type CandleResponse struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

// rowToCandle converts one OKX candle row to a markets.Candle
func rowToCandle(row []string) (markets.Candle, error) {
	candle := markets.Candle{}

	if len(row) < 6 {
		return candle, fmt.Errorf("candle row has %d fields, want at least 6", len(row))
	}

	tsMs, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return candle, fmt.Errorf("invalid timestamp '%s': %w", row[0], err)
	}
	candle.OpenTime = time.Unix(0, tsMs*int64(time.Millisecond))

	prices := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		value, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return candle, fmt.Errorf("invalid candle field %d '%s': %w", i, row[i], err)
		}
		prices[i-1] = value
	}

	candle.Open = prices[0]
	candle.High = prices[1]
	candle.Low = prices[2]
	candle.Close = prices[3]
	candle.Volume = prices[4]

	// the confirm flag is the last field on full rows; treat short rows as final
	candle.Closed = true
	if len(row) >= 9 {
		candle.Closed = row[8] == "1"
	}

	return candle, nil
}

// CandleEventDTO represents a candle push from the OKX websocket API
type CandleEventDTO struct {
	Arg struct {
		Channel string `json:"channel"`
		InstID  string `json:"instId"`
	} `json:"arg"`
	Data [][]string `json:"data"`
}

// toNativeBar translates a dashboard interval token to the OKX bar form
func toNativeBar(interval string) (string, error) {
	bar, ok := candleBars[interval]
	if !ok {
		return "", fmt.Errorf("unsupported interval '%s'", interval)
	}
	return bar, nil
}

// toInstID converts a plain symbol like BTCUSDT into the OKX instrument id BTC-USDT
func toInstID(symbol string) string {
	if strings.Contains(symbol, "-") {
		return symbol
	}
	for _, quote := range []string{"USDT", "USDC", "USD", "BTC", "ETH"} {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return symbol[:len(symbol)-len(quote)] + "-" + quote
		}
	}
	return symbol
}
