package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisNotifier_ChannelFallback(t *testing.T) {
	tests := []struct {
		name     string
		channel  string
		expected string
	}{
		{name: "empty channel uses default", channel: "", expected: DefaultChannel},
		{name: "configured channel is kept", channel: "alerts:custom", expected: "alerts:custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := NewRedisNotifier(nil, tt.channel)
			assert.Equal(t, tt.expected, notifier.channel)
		})
	}
}
