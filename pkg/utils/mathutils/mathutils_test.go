package mathutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercDiff(t *testing.T) {
	tests := []struct {
		name     string
		curr     float64
		prev     float64
		decimals int
		want     float64
	}{
		{"price up", 50500, 50000, 2, 1.00},
		{"price down", 49000, 50000, 2, -2.00},
		{"flat", 50000, 50000, 2, 0.00},
		{"zero base", 50000, 0, 2, 0.00},
		{"no rounding", 3, 8, -1, -62.5},
		{"one decimal", 50123.45, 50000, 1, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercDiff(tt.curr, tt.prev, tt.decimals))
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 68.55, Round(68.5485, 2))
	assert.Equal(t, 68.5, Round(68.5485, 1))
	assert.Equal(t, 69.0, Round(68.5485, 0))
	assert.Equal(t, -1.23, Round(-1.2345, 2))
}
