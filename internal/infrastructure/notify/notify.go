// Package notify fans snapshot and alert events out to external channels.
package notify

import (
	"context"
	"time"
)

//go:generate moq --out mocks/client.go --pkg mocks --with-resets --skip-ensure . Client

// Event represents a notification event
type Event struct {
	Time      time.Time `json:"at"`
	EventType string    `json:"event_type"`
	Data      any       `json:"data"`
}

// Client represents a notification channel contract
type Client interface {
	Send(ctx context.Context, event Event) error
}
