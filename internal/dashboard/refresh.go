package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/markets"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// refreshSnapshot performs one full refresh cycle:
// fetch -> build -> validate -> notify -> store
func (d *Dashboard) refreshSnapshot(ctx context.Context) error {
	span, ctx := d.telemetry.StartSpan(ctx, telemetrySpanRefresh)
	defer span.Finish()

	startAt := time.Now()

	fetched, err := d.fetchCandles(ctx)
	if err != nil {
		return fmt.Errorf("fetchCandles failed: %w", err)
	}
	fetchedAt := time.Now()

	snapshot := &domain.Snapshot{
		ID:            snapshotID(d.symbol, d.interval, startAt),
		Symbol:        d.symbol,
		Interval:      d.interval,
		StartAt:       startAt,
		FetchedAt:     fetchedAt,
		FetchDuration: fetchedAt.Sub(startAt).Milliseconds(),
		Candles:       toDomainCandles(fetched),
	}

	d.buildSnapshot(ctx, snapshot)
	snapshot.CreatedAt = time.Now()
	snapshot.HandlingDuration = time.Since(snapshot.FetchedAt).Milliseconds()

	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("snapshot validation failed: %w", err)
	}

	d.history.Push(*snapshot)
	d.notifyNewSnapshot(ctx, snapshot)

	if err := d.snapshotRepo.Create(ctx, *snapshot); err != nil {
		return fmt.Errorf("failed to store snapshot in DB: %w", err)
	}

	return nil
}

// fetchCandles is a simple wrapper that calls source.FetchCandles
func (d *Dashboard) fetchCandles(ctx context.Context) ([]markets.Candle, error) {
	span, ctx := d.telemetry.StartSpan(ctx, telemetrySpanFetchCandles)
	defer span.Finish()

	startTime := time.Now()
	candles, err := d.source.FetchCandles(ctx, d.symbol, d.interval.String(), d.candleLimit)
	d.telemetry.Timing(telemetryFetchDuration, time.Since(startTime))
	d.telemetry.Gauge(telemetryFetchCandlesCount, float64(len(candles)))

	if err != nil {
		telemetry.TagError(span, err)
		d.telemetry.IncrementCounter(telemetryFetchErrors, 1)
	} else {
		span.SetTag("candles.count", len(candles))
	}

	return candles, err
}

// buildSnapshot derives the indicator series and header stats.
// The candle series itself stays untouched.
func (d *Dashboard) buildSnapshot(ctx context.Context, snapshot *domain.Snapshot) {
	span, _ := d.telemetry.StartSpan(ctx, telemetrySpanBuildSnapshot)
	defer span.Finish()

	indicatorsStart := time.Now()
	if err := snapshot.CalculateIndicators(d.rsiWindow); err != nil {
		d.logger.Error("Error calculating indicators", zap.Error(err))
	}
	d.telemetry.Timing(telemetryCalculateIndicators, time.Since(indicatorsStart))

	if snapshot.Stats != nil && snapshot.Stats.LastRSI.Valid {
		d.telemetry.Gauge(telemetryLastRSI, snapshot.Stats.LastRSI.Value)
	}
}

// applyLiveCandle folds a websocket kline update into the latest snapshot
func (d *Dashboard) applyLiveCandle(candle markets.Candle) {
	base, ok := d.history.Latest()
	if !ok {
		return
	}

	update := toDomainCandles([]markets.Candle{candle})[0]

	candles := append([]domain.Candle(nil), base.Candles...)
	if n := len(candles); n > 0 && candles[n-1].OpenTime.Equal(update.OpenTime) {
		candles[n-1] = update
	} else if n == 0 || update.OpenTime.After(candles[n-1].OpenTime) {
		candles = append(candles, update)
		if len(candles) > d.candleLimit {
			candles = candles[1:]
		}
	} else {
		// out-of-order update, the next refresh will reconcile
		return
	}

	base.Candles = candles
	if err := base.CalculateIndicators(d.rsiWindow); err != nil {
		d.logger.Error("Error recalculating indicators", zap.Error(err))
		return
	}

	d.history.SetLive(base)
}
