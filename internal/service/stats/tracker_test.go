package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmasters/connect4/internal/domain"
	"github.com/taskmasters/connect4/internal/repository/memory"
	"github.com/taskmasters/connect4/internal/service/persist"
)

type failingStore struct{}

func (failingStore) LoadPlayerStats(ctx context.Context) ([]domain.PlayerStats, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) UpsertPlayerStats(ctx context.Context, name string, wins, totalGames int) error {
	return errors.New("connection refused")
}

func (failingStore) DeleteAllPlayerStats(ctx context.Context) error {
	return errors.New("connection refused")
}

func TestRecordResult_CreatesAndUpdatesEntries(t *testing.T) {
	tr := NewTracker(nil, nil)

	tr.RecordResult("alice", "bob")
	alice, ok := tr.Player("alice")
	require.True(t, ok)
	assert.Equal(t, domain.PlayerStats{Name: "alice", Wins: 1, TotalGames: 1}, alice)

	bob, ok := tr.Player("bob")
	require.True(t, ok)
	assert.Equal(t, domain.PlayerStats{Name: "bob", Wins: 0, TotalGames: 1}, bob)

	tr.RecordResult("bob", "alice")
	tr.RecordResult("bob", "carol")

	bob, _ = tr.Player("bob")
	assert.Equal(t, 2, bob.Wins)
	assert.Equal(t, 3, bob.TotalGames)

	board := tr.Leaderboard()
	require.Len(t, board, 3)
	assert.Equal(t, "bob", board[0].Name)
	assert.Equal(t, "alice", board[1].Name)
	assert.Equal(t, "carol", board[2].Name)
}

func TestLeaderboard_SortedAndCountsMatchParticipation(t *testing.T) {
	tr := NewTracker(nil, nil)
	games := [][2]string{
		{"alice", "bob"}, {"carol", "alice"}, {"bob", "carol"},
		{"alice", "dave"}, {"dave", "bob"}, {"alice", "carol"},
	}

	played := map[string]int{}
	for _, g := range games {
		tr.RecordResult(g[0], g[1])
		played[g[0]]++
		played[g[1]]++
	}

	board := tr.Leaderboard()
	require.Len(t, board, len(played))
	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].WinRate(), board[i].WinRate())
	}
	for _, e := range board {
		assert.Equal(t, played[e.Name], e.TotalGames, e.Name)
	}
}

func TestTracker_PersistsThroughStore(t *testing.T) {
	store := memory.NewStore()
	w := persist.NewWriter(8, time.Second)
	tr := NewTracker(store, w)

	tr.RecordResult("alice", "bob")
	tr.RecordResult("alice", "bob")
	w.Close()

	saved, err := store.LoadPlayerStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.PlayerStats{
		{Name: "alice", Wins: 2, TotalGames: 2},
		{Name: "bob", Wins: 0, TotalGames: 2},
	}, saved)

	reloaded := NewTracker(store, nil)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Equal(t, tr.Leaderboard(), reloaded.Leaderboard())
}

func TestTracker_StoreFailureKeepsMemoryState(t *testing.T) {
	w := persist.NewWriter(8, time.Second)
	tr := NewTracker(failingStore{}, w)

	assert.Error(t, tr.Load(context.Background()))
	tr.RecordResult("alice", "bob")
	tr.Reset()
	tr.RecordResult("carol", "dave")
	w.Close()

	assert.Len(t, tr.Leaderboard(), 2)
}

func TestTracker_DrawsAndReset(t *testing.T) {
	store := memory.NewStore()
	w := persist.NewWriter(8, time.Second)
	tr := NewTracker(store, w)

	tr.RecordDraw()
	tr.RecordDraw()
	tr.RecordResult("alice", "bob")
	assert.Equal(t, 2, tr.Draws())
	assert.Len(t, tr.Leaderboard(), 2, "draws do not create entries")

	tr.Reset()
	w.Close()

	assert.Zero(t, tr.Draws())
	assert.Empty(t, tr.Leaderboard())
	saved, _ := store.LoadPlayerStats(context.Background())
	assert.Empty(t, saved)
}
