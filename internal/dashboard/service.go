// Package dashboard implements the refresh engine behind the BTC dashboard:
// it periodically pulls a candle series from a market source, derives the
// indicator series, fans the result out to notifiers and stores it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/notify"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/telemetry"
	"github.com/ayankousky/btc-dashboard/pkg/utils/tradeutils"
	"go.uber.org/zap"
)

const (
	// DefaultSymbol is the pair the dashboard tracks unless configured otherwise
	DefaultSymbol = "BTCUSDT"

	// DefaultCandleLimit is how many candles each refresh requests
	DefaultCandleLimit = 200

	// MaxCandleLimit caps on-demand requests so one client cannot ask
	// the upstream API for an unbounded series
	MaxCandleLimit = 1000
)

//go:generate moq --out mocks/repofactory.go --pkg mocks --with-resets --skip-ensure . RepositoryFactory

// RepositoryFactory creates repositories for a given market source name
type RepositoryFactory interface {
	GetSnapshotRepository(name string) (domain.SnapshotRepository, error)
}

// Config holds the dashboard service configuration
type Config struct {
	Symbol      string
	Interval    domain.Interval
	CandleLimit int
	RSIWindow   int
}

// Dashboard is the main service: it owns the market source, the snapshot
// history and the repositories, and drives the refresh and live stream loops
type Dashboard struct {
	source       markets.Source
	snapshotRepo domain.SnapshotRepository
	logger       *zap.Logger
	telemetry    telemetry.Provider

	symbol      string
	interval    domain.Interval
	candleLimit int
	rsiWindow   int

	history *snapshotHistory

	marketNotifiers []notify.Client
	alertNotifiers  []notify.Client
}

// NewDashboard creates a new Dashboard service for the given source
func NewDashboard(source markets.Source, repoFactory RepositoryFactory, logger *zap.Logger, cfg Config) (*Dashboard, error) {
	if source == nil {
		return nil, errors.New("market source is required")
	}
	if repoFactory == nil {
		return nil, errors.New("repository factory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Symbol == "" {
		cfg.Symbol = DefaultSymbol
	}
	if cfg.Interval == "" {
		cfg.Interval = domain.DefaultInterval
	}
	if err := cfg.Interval.Validate(); err != nil {
		return nil, err
	}
	if cfg.CandleLimit <= 0 {
		cfg.CandleLimit = DefaultCandleLimit
	}
	if cfg.RSIWindow <= 0 {
		cfg.RSIWindow = tradeutils.DefaultRSIWindow
	}

	snapshotRepo, err := repoFactory.GetSnapshotRepository(source.GetName())
	if err != nil {
		return nil, fmt.Errorf("creating snapshot repository: %w", err)
	}

	return &Dashboard{
		source:       source,
		snapshotRepo: snapshotRepo,
		logger:       logger,
		telemetry:    &telemetry.NoopProvider{},

		symbol:      cfg.Symbol,
		interval:    cfg.Interval,
		candleLimit: cfg.CandleLimit,
		rsiWindow:   cfg.RSIWindow,

		history: newSnapshotHistory(domain.MaxSnapshotHistory),
	}, nil
}

// WithTelemetry sets the telemetry provider
func (d *Dashboard) WithTelemetry(provider telemetry.Provider) {
	if provider == nil {
		return
	}
	d.telemetry = provider
}

// SourceName returns the name of the market source the dashboard reads from
func (d *Dashboard) SourceName() string {
	return d.source.GetName()
}

// Symbol returns the tracked pair
func (d *Dashboard) Symbol() string {
	return d.symbol
}

// Interval returns the tracked candle interval
func (d *Dashboard) Interval() domain.Interval {
	return d.interval
}

// StartRefreshLoop bootstraps the history and refreshes the snapshot
// every `every` until the context is canceled
func (d *Dashboard) StartRefreshLoop(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		return errors.New("refresh period must be positive")
	}

	if err := d.initHistory(ctx); err != nil {
		d.logger.Warn("Could not bootstrap snapshot history", zap.Error(err))
	}

	// first refresh happens immediately so the API has data on startup
	if err := d.refreshSnapshot(ctx); err != nil {
		d.logger.Error("Initial refresh failed", zap.Error(err))
	}

	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := d.refreshSnapshot(ctx); err != nil {
					d.logger.Error("Refresh failed", zap.Error(err))
					d.telemetry.IncrementCounter(telemetryRefreshErrors, 1)
				}
			}
		}
	}()

	return nil
}

// StartLiveStream folds websocket kline updates into the latest snapshot
// so the API serves intrabar prices between refreshes
func (d *Dashboard) StartLiveStream(ctx context.Context) error {
	candles, errs := d.source.SubscribeCandles(ctx, d.symbol, d.interval.String())

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case candle, ok := <-candles:
				if !ok {
					return
				}
				d.applyLiveCandle(candle)
			case err, ok := <-errs:
				if !ok {
					return
				}
				d.logger.Warn("Live stream error", zap.Error(err))
				d.telemetry.IncrementCounter(telemetryLiveStreamErrors, 1)
			}
		}
	}()

	return nil
}

// Latest returns the most recent snapshot, live-folded if stream
// updates arrived after the last refresh
func (d *Dashboard) Latest() (domain.Snapshot, bool) {
	return d.history.Latest()
}

// HistorySince returns stored snapshots created since the given time
func (d *Dashboard) HistorySince(ctx context.Context, since time.Time) ([]domain.Snapshot, error) {
	return d.snapshotRepo.GetHistorySince(ctx, since)
}

// CombinedView fetches a candle series on demand and returns it with the
// derived RSI series. Nothing is stored or published.
func (d *Dashboard) CombinedView(ctx context.Context, interval domain.Interval, limit int) (domain.Snapshot, error) {
	if interval == "" {
		interval = d.interval
	}
	if err := interval.Validate(); err != nil {
		return domain.Snapshot{}, err
	}
	if limit <= 0 {
		limit = d.candleLimit
	}
	if limit > MaxCandleLimit {
		limit = MaxCandleLimit
	}

	span, ctx := d.telemetry.StartSpan(ctx, telemetrySpanCombinedView)
	defer span.Finish()

	startAt := time.Now()
	fetched, err := d.source.FetchCandles(ctx, d.symbol, interval.String(), limit)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetching candles: %w", err)
	}
	fetchedAt := time.Now()

	snapshot := domain.Snapshot{
		ID:            snapshotID(d.symbol, interval, startAt),
		Symbol:        d.symbol,
		Interval:      interval,
		StartAt:       startAt,
		FetchedAt:     fetchedAt,
		FetchDuration: fetchedAt.Sub(startAt).Milliseconds(),
		Candles:       toDomainCandles(fetched),
	}
	if err := snapshot.CalculateIndicators(d.rsiWindow); err != nil {
		return domain.Snapshot{}, fmt.Errorf("calculating indicators: %w", err)
	}
	snapshot.CreatedAt = time.Now()
	snapshot.HandlingDuration = snapshot.CreatedAt.Sub(snapshot.FetchedAt).Milliseconds()

	if err := snapshot.Validate(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("invalid snapshot: %w", err)
	}

	return snapshot, nil
}

// snapshotID builds a stable identifier for a snapshot
func snapshotID(symbol string, interval domain.Interval, at time.Time) string {
	return fmt.Sprintf("%s:%s:%d", symbol, interval, at.UnixMilli())
}

// toDomainCandles converts normalized market candles to domain candles
func toDomainCandles(in []markets.Candle) []domain.Candle {
	out := make([]domain.Candle, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Candle{
			OpenTime: c.OpenTime,
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			Volume:   c.Volume,
		})
	}
	return out
}
