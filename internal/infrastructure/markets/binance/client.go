// Package binance provides a client for reading candle data from the Binance spot API
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
	"github.com/gorilla/websocket"
)

const (
	// DefaultReconnectDelay is the time to wait before attempting to reconnect to websocket
	DefaultReconnectDelay = 5 * time.Second

	// DefaultWebsocketTimeout is the read deadline timeout for websocket connections
	DefaultWebsocketTimeout = 60 * time.Second

	// DefaultChannelBuffer is the default size for channels
	DefaultChannelBuffer = 100
)

// Config holds the configuration for the Binance client
type Config struct {
	// Name identifies the client instance
	Name string

	// APIUrl is the base URL for REST API endpoints
	APIUrl string

	// WSUrl is the websocket endpoint base URL
	WSUrl string

	// HTTPClient is a custom HTTP client for making requests
	HTTPClient *http.Client
}

// Client implements a Binance candle source
type Client struct {
	name       string
	httpURL    string
	wsURL      string
	httpClient *http.Client
}

// NewBinance creates a new Binance client with the provided configuration
func NewBinance(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.APIUrl == "" {
		cfg.APIUrl = SpotAPIURL
	}
	if cfg.WSUrl == "" {
		cfg.WSUrl = SpotWSUrl
	}
	if cfg.Name == "" {
		cfg.Name = "Binance spot"
	}

	return &Client{
		name:       cfg.Name,
		httpURL:    cfg.APIUrl,
		wsURL:      cfg.WSUrl,
		httpClient: cfg.HTTPClient,
	}
}

//------------------------------------------------------------------------------
// Fetch Candles API Methods
//------------------------------------------------------------------------------

// FetchCandles retrieves up to limit recent candles for a symbol, oldest first
func (bc *Client) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]markets.Candle, error) {
	native, err := toNativeInterval(interval)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("interval", native)
	query.Set("limit", strconv.Itoa(limit))
	reqURL := bc.httpURL + FetchKlines + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", reqURL, err)
	}

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request for %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}

	var rows []KlineDTO
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", reqURL, err)
	}

	return convertCandles(rows), nil
}

// convertCandles converts Binance kline rows to normalized candles
func convertCandles(rows []KlineDTO) []markets.Candle {
	candles := make([]markets.Candle, 0, len(rows))

	for _, row := range rows {
		candle, err := row.toCandle()
		if err != nil {
			log.Printf("Warning: failed to convert kline: %v", err)
			continue
		}
		candles = append(candles, candle)
	}

	return candles
}

//------------------------------------------------------------------------------
// Live Candles API Methods
//------------------------------------------------------------------------------

// SubscribeCandles initiates a websocket connection to receive kline updates
// It returns two channels: one for candle updates and one for errors
func (bc *Client) SubscribeCandles(ctx context.Context, symbol, interval string) (candles <-chan markets.Candle, errors <-chan error) {
	out := make(chan markets.Candle, DefaultChannelBuffer)
	errCh := make(chan error, DefaultChannelBuffer)

	go bc.handleCandleSubscription(ctx, symbol, interval, out, errCh)

	return out, errCh
}

// handleCandleSubscription manages the websocket connection lifecycle
// It continuously attempts to maintain a connection and handles errors gracefully
func (bc *Client) handleCandleSubscription(ctx context.Context, symbol, interval string, out chan<- markets.Candle, errCh chan<- error) {
	defer close(out)
	defer close(errCh)

	native, err := toNativeInterval(interval)
	if err != nil {
		errCh <- err
		return
	}
	streamURL := fmt.Sprintf("%s/%s@kline_%s", bc.wsURL, strings.ToLower(symbol), native)

	for {
		if err := bc.connectAndHandle(ctx, streamURL, out, errCh); err != nil {
			select {
			case errCh <- fmt.Errorf("websocket error: %w", err):
			default:
				log.Printf("Error: %v", err)
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
			log.Printf("Reconnecting in %s...", DefaultReconnectDelay)
			time.Sleep(DefaultReconnectDelay)
		}
	}
}

// connectAndHandle establishes and manages a single websocket connection
func (bc *Client) connectAndHandle(ctx context.Context, streamURL string, out chan<- markets.Candle, errCh chan<- error) error {
	conn, _, err := websocket.DefaultDialer.Dial(streamURL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}
	defer conn.Close()

	return bc.readMessages(ctx, conn, out, errCh)
}

// readMessages reads and processes messages from the websocket connection
func (bc *Client) readMessages(ctx context.Context, conn *websocket.Conn, out chan<- markets.Candle, errCh chan<- error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			if err := conn.SetReadDeadline(time.Now().Add(DefaultWebsocketTimeout)); err != nil {
				return fmt.Errorf("setting read deadline: %w", err)
			}

			_, msg, err := conn.ReadMessage()
			if err != nil {
				return fmt.Errorf("reading message: %w", err)
			}

			if err := bc.processMessage(ctx, msg, out, errCh); err != nil {
				log.Printf("Warning: message processing error: %v", err)
			}
		}
	}
}

// processMessage handles the deserialization and conversion of websocket messages
func (bc *Client) processMessage(ctx context.Context, msg []byte, out chan<- markets.Candle, errCh chan<- error) error {
	var event KlineEventDTO
	if err := json.Unmarshal(msg, &event); err != nil {
		select {
		case errCh <- err:
		default:
			log.Printf("unmarshaling message error: %v", err)
		}
		return err
	}

	if event.EventType != "kline" {
		return nil
	}

	candle, err := event.toCandle()
	if err != nil {
		select {
		case errCh <- err:
		default:
			log.Printf("converting kline error: %v", err)
		}
		return err
	}

	select {
	case out <- candle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context canceled")
	}
}

//------------------------------------------------------------------------------
// Other methods
//------------------------------------------------------------------------------

// GetName returns the name of the client instance
func (bc *Client) GetName() string {
	return bc.name
}
