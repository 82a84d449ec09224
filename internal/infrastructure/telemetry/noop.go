package telemetry

import (
	"context"
	"time"
)

// NoopProvider is the Provider used when telemetry is disabled
type NoopProvider struct{}

// Initialize does nothing and always returns nil
func (p *NoopProvider) Initialize(_ context.Context) error {
	return nil
}

// Shutdown does nothing
func (p *NoopProvider) Shutdown() {}

// StartSpan returns a noop span and the unchanged context
func (p *NoopProvider) StartSpan(ctx context.Context, _ string) (Span, context.Context) {
	return &noopSpan{}, ctx
}

// IncrementCounter does nothing
func (p *NoopProvider) IncrementCounter(_ string, _ int64, _ ...string) {}

// Gauge does nothing
func (p *NoopProvider) Gauge(_ string, _ float64, _ ...string) {}

// Timing does nothing
func (p *NoopProvider) Timing(_ string, _ time.Duration, _ ...string) {}
