// Package okx provides a client for reading candle data from the OKX v5 API
package okx

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
	DefaultWebsocketTimeout = 60 * time.Second

	// DefaultChannelBuffer is the default size for channels
	DefaultChannelBuffer = 100
)

// Config holds the configuration for the OKX client
type Config struct {
	Name       string
	APIUrl     string
	WSUrl      string
	HTTPClient *http.Client
}

// Client implements an OKX candle source
type Client struct {
	name       string
	httpURL    string
	wsURL      string
	httpClient *http.Client
}

// NewOKX creates a new OKX client with the provided configuration
func NewOKX(cfg Config) *Client {
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
		cfg.Name = "OKX spot"
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
func (oc *Client) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]markets.Candle, error) {
	bar, err := toNativeBar(interval)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("instId", toInstID(symbol))
	query.Set("bar", bar)
	query.Set("limit", strconv.Itoa(limit))
	reqURL := oc.httpURL + FetchCandlesEndpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", reqURL, err)
	}

	resp, err := oc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request for %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}

	var response CandleResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", reqURL, err)
	}
	if response.Code != "0" {
		return nil, fmt.Errorf("okx error %s: %s", response.Code, response.Msg)
	}

	// OKX serves rows newest first
	candles := make([]markets.Candle, 0, len(response.Data))
	for i := len(response.Data) - 1; i >= 0; i-- {
		candle, err := rowToCandle(response.Data[i])
		if err != nil {
			log.Printf("Warning: failed to convert candle: %v", err)
			continue
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

//------------------------------------------------------------------------------
// Live Candles API Methods
//------------------------------------------------------------------------------

// SubscribeCandles initiates a websocket connection to receive candle updates
func (oc *Client) SubscribeCandles(ctx context.Context, symbol, interval string) (candles <-chan markets.Candle, errors <-chan error) {
	out := make(chan markets.Candle, DefaultChannelBuffer)
	errCh := make(chan error, DefaultChannelBuffer)

	go oc.handleCandleSubscription(ctx, symbol, interval, out, errCh)

	return out, errCh
}

// handleCandleSubscription manages the websocket connection lifecycle
func (oc *Client) handleCandleSubscription(ctx context.Context, symbol, interval string, out chan<- markets.Candle, errCh chan<- error) {
	defer close(out)
	defer close(errCh)

	bar, err := toNativeBar(interval)
	if err != nil {
		errCh <- err
		return
	}

	for {
		if err := oc.connectAndHandle(ctx, symbol, bar, out, errCh); err != nil {
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

// connectAndHandle establishes a connection, subscribes to the candle channel and reads messages
func (oc *Client) connectAndHandle(ctx context.Context, symbol, bar string, out chan<- markets.Candle, errCh chan<- error) error {
	conn, _, err := websocket.DefaultDialer.Dial(oc.wsURL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}
	defer conn.Close()

	subscribe := map[string]any{
		"op": "subscribe",
		"args": []map[string]string{{
			"channel": "candle" + bar,
			"instId":  toInstID(symbol),
		}},
	}
	if err := conn.WriteJSON(subscribe); err != nil {
		return fmt.Errorf("subscribing to candle%s: %w", bar, err)
	}

	return oc.readMessages(ctx, conn, out, errCh)
}

// readMessages reads and processes messages from the websocket connection
func (oc *Client) readMessages(ctx context.Context, conn *websocket.Conn, out chan<- markets.Candle, errCh chan<- error) error {
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

			if err := oc.processMessage(ctx, msg, out, errCh); err != nil {
				log.Printf("Warning: message processing error: %v", err)
			}
		}
	}
}

// processMessage handles the deserialization and conversion of websocket messages
func (oc *Client) processMessage(ctx context.Context, msg []byte, out chan<- markets.Candle, errCh chan<- error) error {
	var event CandleEventDTO
	if err := json.Unmarshal(msg, &event); err != nil {
		select {
		case errCh <- err:
		default:
			log.Printf("unmarshaling message error: %v", err)
		}
		return err
	}

	// subscription acks carry no data rows
	if len(event.Data) == 0 {
		return nil
	}

	for _, row := range event.Data {
		candle, err := rowToCandle(row)
		if err != nil {
			select {
			case errCh <- err:
			default:
				log.Printf("converting candle error: %v", err)
			}
			continue
		}

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
func (oc *Client) GetName() string {
	return oc.name
}
