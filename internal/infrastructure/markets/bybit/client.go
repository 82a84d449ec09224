// Package bybit provides a client for reading candle data from the Bybit v5 spot API
package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
	"github.com/gorilla/websocket"
)

const (
	// DefaultReconnectDelay is the time to wait before attempting to reconnect to websocket
	DefaultReconnectDelay = 5 * time.Second

	// DefaultWebsocketTimeout is the read deadline timeout for websocket connections
	DefaultWebsocketTimeout = 120 * time.Second

	// DefaultChannelBuffer is the default size for channels
	DefaultChannelBuffer = 100
)

// Config holds the configuration for the Bybit client
type Config struct {
	Name       string
	APIUrl     string
	WSUrl      string
	HTTPClient *http.Client
}

// Client implements a Bybit candle source
type Client struct {
	name       string
	httpURL    string
	wsURL      string
	httpClient *http.Client
}

// NewBybit creates a new Bybit client with the provided configuration
func NewBybit(cfg Config) *Client {
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
		cfg.Name = "Bybit spot"
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
	query.Set("category", "spot")
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

	var response KlineResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", reqURL, err)
	}
	if response.RetCode != 0 {
		return nil, fmt.Errorf("bybit error %d: %s", response.RetCode, response.RetMsg)
	}

	// Bybit serves rows newest first
	candles := make([]markets.Candle, 0, len(response.Result.List))
	for i := len(response.Result.List) - 1; i >= 0; i-- {
		candle, err := rowToCandle(response.Result.List[i])
		if err != nil {
			log.Printf("Warning: failed to convert kline: %v", err)
			continue
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

//------------------------------------------------------------------------------
// Live Candles API Methods
//------------------------------------------------------------------------------

// SubscribeCandles initiates a websocket connection to receive kline updates
func (bc *Client) SubscribeCandles(ctx context.Context, symbol, interval string) (candles <-chan markets.Candle, errors <-chan error) {
	out := make(chan markets.Candle, DefaultChannelBuffer)
	errCh := make(chan error, DefaultChannelBuffer)

	go bc.handleCandleSubscription(ctx, symbol, interval, out, errCh)

	return out, errCh
}

// handleCandleSubscription manages the websocket connection lifecycle
func (bc *Client) handleCandleSubscription(ctx context.Context, symbol, interval string, out chan<- markets.Candle, errCh chan<- error) {
	defer close(out)
	defer close(errCh)

	native, err := toNativeInterval(interval)
	if err != nil {
		errCh <- err
		return
	}
	topic := fmt.Sprintf("kline.%s.%s", native, symbol)

	for {
		if err := bc.connectAndHandle(ctx, topic, out, errCh); err != nil {
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

// connectAndHandle establishes a connection, subscribes to the topic and reads messages
func (bc *Client) connectAndHandle(ctx context.Context, topic string, out chan<- markets.Candle, errCh chan<- error) error {
	conn, _, err := websocket.DefaultDialer.Dial(bc.wsURL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}
	defer conn.Close()

	subscribe := map[string]any{
		"op":   "subscribe",
		"args": []string{topic},
	}
	if err := conn.WriteJSON(subscribe); err != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}

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

	// subscription acks and pings have no data payload
	if len(event.Data) == 0 {
		return nil
	}

	candles, err := event.toCandles()
	if err != nil {
		select {
		case errCh <- err:
		default:
			log.Printf("converting kline error: %v", err)
		}
		return err
	}

	for _, candle := range candles {
		select {
		case out <- candle:
		case <-ctx.Done():
			return fmt.Errorf("context canceled")
		}
	}
	return nil
}

//------------------------------------------------------------------------------
// Other methods
//------------------------------------------------------------------------------

// GetName returns the name of the client instance
func (bc *Client) GetName() string {
	return bc.name
}
