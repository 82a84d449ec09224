package notify

import (
	"context"
	"encoding/json"
	"fmt"
)

// ConsoleNotifier prints events to stdout, mostly for local runs
type ConsoleNotifier struct{}

// NewConsoleNotifier creates a new console notifier
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

// Send writes the event to stdout as a single line
func (n *ConsoleNotifier) Send(_ context.Context, event Event) error {
	line, err := formatEvent(event)
	if err != nil {
		return err
	}
	fmt.Println(line)
	return nil
}

// formatEvent renders an event as "HH:MM:SS [TOPIC] payload". Alert messages
// arrive as strings and pass through as-is; structured market-data payloads
// are JSON-encoded.
func formatEvent(event Event) (string, error) {
	payload, ok := event.Data.(string)
	if !ok {
		encoded, err := json.Marshal(event.Data)
		if err != nil {
			return "", fmt.Errorf("encoding console event: %w", err)
		}
		payload = string(encoded)
	}
	return fmt.Sprintf("%s [%s] %s", event.Time.Format("15:04:05"), event.EventType, payload), nil
}
