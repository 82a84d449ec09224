package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFearGreedClient_FetchLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Fear and Greed Index",
			"data": [
				{"value": "40", "value_classification": "Fear", "timestamp": "1719792000"},
				{"value": "55", "value_classification": "Greed", "timestamp": "1719705600"}
			],
			"metadata": {"error": null}
		}`))
	}))
	defer server.Close()

	client := NewFearGreedClient(FearGreedConfig{APIUrl: server.URL})

	cards, err := client.FetchLatest(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, 40, cards[0].Value)
	assert.Equal(t, "Fear", cards[0].Classification)
	assert.Equal(t, time.Unix(1719792000, 0).UTC(), cards[0].At)
	assert.Equal(t, 55, cards[1].Value)
}

func TestFearGreedClient_FetchLatestErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "http error",
			status:  http.StatusTooManyRequests,
			body:    "",
			wantErr: "unexpected status code",
		},
		{
			name:    "feed error in metadata",
			status:  http.StatusOK,
			body:    `{"data": [], "metadata": {"error": "rate limited"}}`,
			wantErr: "feed error",
		},
		{
			name:    "value out of range",
			status:  http.StatusOK,
			body:    `{"data": [{"value": "120", "value_classification": "Greed", "timestamp": "1719792000"}], "metadata": {"error": null}}`,
			wantErr: "invalid sentiment card",
		},
		{
			name:    "malformed value",
			status:  http.StatusOK,
			body:    `{"data": [{"value": "NaN", "value_classification": "Fear", "timestamp": "1719792000"}], "metadata": {"error": null}}`,
			wantErr: "parsing index value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewFearGreedClient(FearGreedConfig{APIUrl: server.URL})

			_, err := client.FetchLatest(context.Background(), 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
