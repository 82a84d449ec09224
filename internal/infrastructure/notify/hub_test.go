package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingClient struct {
	sent atomic.Int64
	err  error
}

func (c *countingClient) Send(_ context.Context, _ Event) error {
	c.sent.Add(1)
	return c.err
}

func TestHub_Subscribe(t *testing.T) {
	hub := NewHub(zap.NewNop())

	require.Error(t, hub.Subscribe("topic", nil))
	require.NoError(t, hub.Subscribe("topic", &countingClient{}))
	require.NoError(t, hub.Subscribe("topic", &countingClient{}))

	assert.Equal(t, 2, hub.GetSubscriberCount("topic"))
	assert.Equal(t, 0, hub.GetSubscriberCount("other"))
}

func TestHub_Publish(t *testing.T) {
	hub := NewHub(zap.NewNop())

	healthy := &countingClient{}
	failing := &countingClient{err: errors.New("channel down")}
	other := &countingClient{}

	require.NoError(t, hub.Subscribe("market", healthy))
	require.NoError(t, hub.Subscribe("market", failing))
	require.NoError(t, hub.Subscribe("alerts", other))

	event := Event{Time: time.Now(), EventType: "market", Data: "payload"}
	hub.Publish(context.Background(), "market", event)

	assert.Equal(t, int64(1), healthy.sent.Load())
	assert.Equal(t, int64(1), failing.sent.Load(), "one failing client must not block others")
	assert.Equal(t, int64(0), other.sent.Load(), "events stay within their topic")
}
