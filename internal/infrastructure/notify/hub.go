package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// publishTimeout bounds a single Send so one slow channel
// cannot stall the whole fan-out
const publishTimeout = 5 * time.Second

type clientTopic string

// Hub routes events to the clients subscribed to each topic
type Hub struct {
	subscribers map[clientTopic][]Client
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewHub creates a new Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[clientTopic][]Client),
		logger:      logger,
	}
}

// Subscribe adds a client to a specific topic
func (h *Hub) Subscribe(topic string, client Client) error {
	if client == nil {
		return fmt.Errorf("client cannot be nil")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.subscribers[clientTopic(topic)] = append(h.subscribers[clientTopic(topic)], client)
	return nil
}

// Publish sends an event to all subscribers of a topic in parallel
func (h *Hub) Publish(ctx context.Context, topic string, event Event) {
	h.mu.RLock()
	clients := make([]Client, len(h.subscribers[clientTopic(topic)]))
	copy(clients, h.subscribers[clientTopic(topic)])
	h.mu.RUnlock()

	g, ctx := errgroup.WithContext(ctx)

	for _, client := range clients {
		c := client
		g.Go(func() error {
			timeoutCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			defer cancel()

			if err := c.Send(timeoutCtx, event); err != nil {
				h.logger.Error("Failed to publish event",
					zap.Error(err),
					zap.String("topic", topic))
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		h.logger.Error("Some publish operations failed", zap.Error(err))
	}
}

// GetSubscriberCount returns the number of subscribers for a topic
func (h *Hub) GetSubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[clientTopic(topic)])
}
