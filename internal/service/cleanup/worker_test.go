package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmasters/connect4/internal/domain"
	"github.com/taskmasters/connect4/internal/repository/memory"
)

func TestRunOnce_RemovesExpiredMatches(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()

	for _, age := range []time.Duration{time.Hour, 29 * 24 * time.Hour, 31 * 24 * time.Hour, 90 * 24 * time.Hour} {
		require.NoError(t, store.SaveMatch(ctx, domain.MatchRecord{
			ID:       age.String(),
			PlayedAt: now.Add(-age),
		}))
	}

	w := NewWorker(store, 30)
	w.now = func() time.Time { return now }

	deleted, err := w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	left, err := store.RecentMatches(ctx, 0)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, (time.Hour).String(), left[0].ID)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	w := NewWorker(memory.NewStore(), 30)
	assert.Error(t, w.Start("every tuesday"))
}

func TestStartStop(t *testing.T) {
	w := NewWorker(memory.NewStore(), 30)
	require.NoError(t, w.Start("0 0 * * * *"))
	w.Stop()
}
