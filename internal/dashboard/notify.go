package dashboard

import (
	"context"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/ayankousky/btc-dashboard/internal/infrastructure/notify"
	"go.uber.org/zap"
)

var tgAlertThresholds = domain.AlertThresholds{
	RSIOverbought: 70,
	RSIOversold:   30,
	Change1Pct:    2.0,
	Change20Pct:   5.0,
}

// WithMarketNotify adds a new publisher to the list of marketNotifiers
func (d *Dashboard) WithMarketNotify(notifier notify.Client) {
	if notifier == nil {
		d.logger.Warn("Cannot add nil notifier to market notifiers")
		return
	}
	d.marketNotifiers = append(d.marketNotifiers, notifier)
}

// WithAlertNotify adds a new publisher to the list of alertNotifiers
func (d *Dashboard) WithAlertNotify(notifier notify.Client) {
	if notifier == nil {
		d.logger.Warn("Cannot add nil notifier to alert notifiers")
		return
	}
	d.alertNotifiers = append(d.alertNotifiers, notifier)
}

// notifyNewSnapshot sends the snapshot to market data subscribers and,
// when thresholds trip, an alert message to alert subscribers
func (d *Dashboard) notifyNewSnapshot(ctx context.Context, snapshot *domain.Snapshot) {
	for _, publisher := range d.marketNotifiers {
		notification, err := domain.NewSnapshotNotification(snapshot)
		if err != nil {
			d.logger.Warn("Failed to create snapshot notification", zap.Error(err))
			continue
		}

		event := notify.Event{
			Time:      time.Now(),
			EventType: domain.MarketDataTopic,
			Data:      notification,
		}

		if err := publisher.Send(ctx, event); err != nil {
			d.logger.Warn("Failed to publish snapshot", zap.Error(err))
		}
	}

	alertMessage, hasAlerts := domain.FormatSnapshotAlert(snapshot, tgAlertThresholds)
	if !hasAlerts {
		return
	}
	for _, publisher := range d.alertNotifiers {
		event := notify.Event{
			Time:      time.Now(),
			EventType: domain.AlertTopic,
			Data:      alertMessage,
		}

		if err := publisher.Send(ctx, event); err != nil {
			d.logger.Warn("Failed to publish alert", zap.Error(err))
		}
	}
}
