// Package feeds provides clients for auxiliary market data feeds.
package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
)

// FearGreedAPIURL is the alternative.me Fear & Greed index endpoint
const FearGreedAPIURL = "https://api.alternative.me/fng/"

// fngResponse mirrors the alternative.me payload. Values come as strings.
type fngResponse struct {
	Name string `json:"name"`
	Data []struct {
		Value          string `json:"value"`
		Classification string `json:"value_classification"`
		Timestamp      string `json:"timestamp"`
	} `json:"data"`
	Metadata struct {
		Error any `json:"error"`
	} `json:"metadata"`
}

// FearGreedConfig holds the configuration for the Fear & Greed client
type FearGreedConfig struct {
	APIUrl     string
	HTTPClient *http.Client
}

// FearGreedClient fetches the Fear & Greed index from alternative.me
type FearGreedClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewFearGreedClient creates a new FearGreedClient with the provided configuration
func NewFearGreedClient(cfg FearGreedConfig) *FearGreedClient {
	if cfg.APIUrl == "" {
		cfg.APIUrl = FearGreedAPIURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	return &FearGreedClient{
		apiURL:     cfg.APIUrl,
		httpClient: cfg.HTTPClient,
	}
}

// FetchLatest retrieves up to limit recent sentiment cards, newest first.
// The cards are relayed as published, no aggregation happens here.
func (c *FearGreedClient) FetchLatest(ctx context.Context, limit int) ([]domain.SentimentCard, error) {
	if limit < 1 {
		limit = 1
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("format", "json")
	reqURL := c.apiURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", reqURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request for %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}

	var payload fngResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", reqURL, err)
	}
	if payload.Metadata.Error != nil {
		return nil, fmt.Errorf("feed error: %v", payload.Metadata.Error)
	}

	cards := make([]domain.SentimentCard, 0, len(payload.Data))
	for _, row := range payload.Data {
		value, err := strconv.Atoi(row.Value)
		if err != nil {
			return nil, fmt.Errorf("parsing index value %q: %w", row.Value, err)
		}
		ts, err := strconv.ParseInt(row.Timestamp, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", row.Timestamp, err)
		}

		card := domain.SentimentCard{
			Value:          value,
			Classification: row.Classification,
			At:             time.Unix(ts, 0).UTC(),
		}
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("invalid sentiment card: %w", err)
		}
		cards = append(cards, card)
	}

	return cards, nil
}
