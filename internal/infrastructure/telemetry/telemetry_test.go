package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSpan struct {
	tags     map[string]any
	finished bool
}

func (s *recordingSpan) SetTag(key string, value any) {
	if s.tags == nil {
		s.tags = make(map[string]any)
	}
	s.tags[key] = value
}

func (s *recordingSpan) Finish() { s.finished = true }

func TestTagError(t *testing.T) {
	t.Run("nil error leaves the span untouched", func(t *testing.T) {
		span := &recordingSpan{}
		TagError(span, nil)
		assert.Empty(t, span.tags)
	})

	t.Run("error sets the Datadog error tags", func(t *testing.T) {
		span := &recordingSpan{}
		TagError(span, errors.New("fetch timed out"))

		assert.Equal(t, true, span.tags["error"])
		assert.Equal(t, "fetch timed out", span.tags["error.message"])
	})
}
