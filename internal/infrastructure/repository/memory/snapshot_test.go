package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ayankousky/btc-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_GetHistorySince(t *testing.T) {
	factory := NewInMemoryRepoFactory()
	repo, err := factory.GetSnapshotRepository("binance")
	require.NoError(t, err)

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, domain.Snapshot{
			Symbol:    "BTCUSDT",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	history, err := repo.GetHistorySince(ctx, base.Add(3*time.Minute))
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, base.Add(3*time.Minute), history[0].CreatedAt)

	history, err = repo.GetHistorySince(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, history)
}
