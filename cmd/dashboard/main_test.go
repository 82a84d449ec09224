package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSource(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(opts *options)
		wantName string
	}{
		{
			name:     "binance by default",
			setup:    func(_ *options) {},
			wantName: "Binance spot",
		},
		{
			name: "bybit when named",
			setup: func(opts *options) {
				opts.Market.Bybit.Name = "Bybit spot"
			},
			wantName: "Bybit spot",
		},
		{
			name: "okx when named",
			setup: func(opts *options) {
				opts.Market.OKX.Name = "OKX spot"
			},
			wantName: "OKX spot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options
			tt.setup(&opts)

			source := getSource(opts)
			require.NotNil(t, source)
			assert.Equal(t, tt.wantName, source.GetName())
		})
	}
}

func TestGetRepositoryFactory(t *testing.T) {
	// no backend configured: memory factory without external connections
	var opts options
	factory, err := getRepositoryFactory(context.Background(), opts)
	require.NoError(t, err)

	repo, err := factory.GetSnapshotRepository("test")
	require.NoError(t, err)
	assert.NotNil(t, repo)

	// sqlite in-memory
	opts.Repository.SQLite.DSN = ":memory:"
	factory, err = getRepositoryFactory(context.Background(), opts)
	require.NoError(t, err)

	repo, err = factory.GetSnapshotRepository("test")
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestGetTelemetry(t *testing.T) {
	var opts options
	provider := getTelemetry(opts)
	require.NoError(t, provider.Initialize(context.Background()))
	provider.Shutdown()

	opts.Telemetry.Datadog.AgentHost = "localhost"
	provider = getTelemetry(opts)
	assert.NotNil(t, provider)
}
