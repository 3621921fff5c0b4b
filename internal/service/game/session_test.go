package game

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmasters/connect4/internal/domain"
	"github.com/taskmasters/connect4/internal/repository/memory"
	"github.com/taskmasters/connect4/internal/service/bot"
	"github.com/taskmasters/connect4/internal/service/match"
	"github.com/taskmasters/connect4/internal/service/persist"
	"github.com/taskmasters/connect4/internal/service/replay"
	"github.com/taskmasters/connect4/internal/service/stats"
)

type recordingNotifier struct {
	mu      sync.Mutex
	dropped []domain.Move
	won     []string
	drawn   int
}

func (n *recordingNotifier) PieceDropped(move domain.Move, row int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dropped = append(n.dropped, move)
}

func (n *recordingNotifier) GameWon(winner domain.Player, name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.won = append(n.won, name)
}

func (n *recordingNotifier) GameDrawn() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.drawn++
}

type panickingNotifier struct{}

func (panickingNotifier) PieceDropped(domain.Move, int) { panic("speaker unplugged") }
func (panickingNotifier) GameWon(domain.Player, string) { panic("speaker unplugged") }
func (panickingNotifier) GameDrawn()                    { panic("speaker unplugged") }

var clock = time.Date(2025, 4, 24, 18, 30, 0, 0, time.UTC)

func newSession(t *testing.T, n Notifier) *Session {
	t.Helper()
	s, err := NewSession(
		match.NewRecorder(0, nil, nil),
		stats.NewTracker(nil, nil),
		match.Names{First: "Red", Second: "Yellow"},
		n,
		WithRand(rand.New(rand.NewSource(7))),
		WithClock(func() time.Time { return clock }),
	)
	require.NoError(t, err)
	return s
}

func drop(t *testing.T, s *Session, cols ...int) DropResult {
	t.Helper()
	var res DropResult
	for _, c := range cols {
		var err error
		res, err = s.DropPiece(c)
		require.NoErrorf(t, err, "column %d", c)
	}
	return res
}

func TestSession_HorizontalWinRecordsMatchAndStats(t *testing.T) {
	n := &recordingNotifier{}
	s := newSession(t, n)

	res := drop(t, s, 0, 6, 1, 6, 2, 6)
	assert.Equal(t, domain.StatusInProgress, res.Outcome.Status)
	assert.Nil(t, res.Record)

	res = drop(t, s, 3)
	assert.Equal(t, domain.Outcome{Status: domain.StatusWon, Winner: domain.First}, res.Outcome)
	require.NotNil(t, res.Record)
	assert.Equal(t, "Red", res.Record.WinnerName)
	assert.Equal(t, clock, res.Record.PlayedAt)

	assert.Len(t, n.dropped, 7)
	assert.Equal(t, []string{"Red"}, n.won)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, res.Record.ID, history[0].ID)

	assert.Equal(t, []domain.PlayerStats{
		{Name: "Red", Wins: 1, TotalGames: 1},
		{Name: "Yellow", Wins: 0, TotalGames: 1},
	}, s.Leaderboard())

	snap := s.Snapshot()
	assert.Equal(t, "Red", snap.WinnerName)
	require.NotNil(t, snap.LastMove)
	assert.Equal(t, domain.Move{Column: 3, Player: domain.First}, *snap.LastMove)
	_, err := s.DropPiece(4)
	assert.ErrorIs(t, err, domain.ErrGameOver)
}

func TestSession_RejectedMovesDoNotNotify(t *testing.T) {
	n := &recordingNotifier{}
	s := newSession(t, n)

	_, err := s.DropPiece(9)
	assert.ErrorIs(t, err, domain.ErrInvalidColumn)

	require.True(t, s.Pause())
	_, err = s.DropPiece(0)
	assert.ErrorIs(t, err, domain.ErrGamePaused)
	_, err = s.ComputerMove(bot.LevelEasy)
	assert.ErrorIs(t, err, domain.ErrGamePaused)
	assert.Equal(t, domain.StatePaused, s.Snapshot().State)

	require.True(t, s.Resume())
	assert.Empty(t, n.dropped)
	assert.Empty(t, s.Snapshot().Moves)
}

func TestSession_DrawCountsButDoesNotRecord(t *testing.T) {
	n := &recordingNotifier{}
	s := newSession(t, n)

	var moves []int
	for _, pair := range [][2]int{{0, 2}, {1, 3}, {4, 6}} {
		for i := 0; i < 3; i++ {
			moves = append(moves, pair[0], pair[1], pair[1], pair[0])
		}
	}
	moves = append(moves, 5, 5, 5, 5, 5, 5)

	res := drop(t, s, moves...)
	assert.Equal(t, domain.Outcome{Status: domain.StatusDraw}, res.Outcome)
	assert.Equal(t, 1, n.drawn)
	assert.Equal(t, 1, s.Draws())
	assert.Empty(t, s.History())
	assert.Empty(t, s.Leaderboard())
}

func TestSession_NotifierPanicIsIgnored(t *testing.T) {
	rec := &recordingNotifier{}
	s := newSession(t, Notifiers{panickingNotifier{}, rec})

	res := drop(t, s, 0, 1, 0, 1, 0, 1, 0)
	assert.Equal(t, domain.StatusWon, res.Outcome.Status)
	assert.Len(t, rec.dropped, 7)
	assert.Equal(t, []string{"Red"}, rec.won)
}

func TestSession_Reset(t *testing.T) {
	s := newSession(t, nil)
	drop(t, s, 3, 3)

	snap, err := s.Reset(ResetOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.Standard, snap.Dimensions)
	assert.Equal(t, domain.First, snap.CurrentPlayer)
	assert.Empty(t, snap.Moves)

	snap, err = s.Reset(ResetOptions{BoardType: BoardCustom, Dimensions: domain.Dimensions{Columns: 9, Rows: 7}})
	require.NoError(t, err)
	assert.Equal(t, domain.Dimensions{Columns: 9, Rows: 7}, snap.Dimensions)
	assert.Len(t, snap.Board, 9)
	assert.Len(t, snap.Board[0], 7)

	_, err = s.Reset(ResetOptions{BoardType: BoardCustom, Dimensions: domain.Dimensions{Columns: 3, Rows: 7}})
	assert.ErrorIs(t, err, domain.ErrInvalidDimensions)

	_, err = s.Reset(ResetOptions{BoardType: "hexagonal"})
	assert.ErrorIs(t, err, ErrInvalidBoard)
}

func TestSession_RandomBoardAndStartingPlayer(t *testing.T) {
	s := newSession(t, nil)

	starters := map[domain.Player]int{}
	for i := 0; i < 200; i++ {
		snap, err := s.Reset(ResetOptions{BoardType: BoardRandom, RandomStartingPlayer: true})
		require.NoError(t, err)

		d := snap.Dimensions
		assert.True(t, d.Columns >= RandomMinColumns && d.Columns <= RandomMaxColumns, d.String())
		assert.True(t, d.Rows >= RandomMinRows && d.Rows <= RandomMaxRows, d.String())
		assert.Equal(t, snap.StartingPlayer, snap.CurrentPlayer)
		starters[snap.StartingPlayer]++
	}
	assert.Greater(t, starters[domain.First], 50)
	assert.Greater(t, starters[domain.Second], 50)
}

func TestSession_SetPlayerNames(t *testing.T) {
	s := newSession(t, nil)

	assert.ErrorIs(t, s.SetPlayerNames("Sam", " Sam "), ErrInvalidNames)
	assert.ErrorIs(t, s.SetPlayerNames("", "Sam"), ErrInvalidNames)
	assert.ErrorIs(t, s.SetPlayerNames(strings.Repeat("a", MaxNameLength+1), "Sam"), ErrInvalidNames)
	require.NoError(t, s.SetPlayerNames(strings.Repeat("é", MaxNameLength), "Sam"))
	require.NoError(t, s.SetPlayerNames(" Jesten ", "Sreeja"))

	res := drop(t, s, 0, 1, 0, 1, 0, 1, 0)
	require.NotNil(t, res.Record)
	assert.Equal(t, "Jesten", res.Record.WinnerName)
	assert.Equal(t, "Sreeja", res.Record.LoserName)
}

func TestSession_ReplayStepByStep(t *testing.T) {
	s := newSession(t, nil)
	res := drop(t, s, 0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3)
	require.NotNil(t, res.Record)
	final := s.Snapshot()

	_, err := s.StepReplay()
	assert.ErrorIs(t, err, ErrNoReplay)

	status, err := s.StartReplay(res.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Applied)
	assert.Equal(t, 11, status.Total)

	for i := 0; i < 11; i++ {
		status, err = s.StepReplay()
		require.NoError(t, err)
		require.NotNil(t, status.LastMove)
		assert.Equal(t, res.Record.Moves[i], *status.LastMove)
		assert.Equal(t, i+1, status.Applied)
	}
	assert.True(t, status.Done)
	assert.Equal(t, final.Board, status.Board)
	assert.Equal(t, final.Outcome, status.Outcome)

	status, err = s.StepReplay()
	require.NoError(t, err)
	assert.Nil(t, status.LastMove)

	s.StopReplay()
	_, err = s.ReplayStatus()
	assert.ErrorIs(t, err, ErrNoReplay)

	_, err = s.StartReplay("missing")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func TestSession_ReplayDoesNotTouchLiveGame(t *testing.T) {
	s := newSession(t, nil)
	res := drop(t, s, 0, 1, 0, 1, 0, 1, 0)
	_, err := s.Reset(ResetOptions{})
	require.NoError(t, err)
	drop(t, s, 4)

	_, err = s.StartReplay(res.Record.ID)
	require.NoError(t, err)
	_, err = s.StepReplay()
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Len(t, snap.Moves, 1)
	assert.Equal(t, domain.Move{Column: 4, Player: domain.First}, snap.Moves[0])
}

func TestSession_ComputerMoveAndHint(t *testing.T) {
	s := newSession(t, nil)
	drop(t, s, 0, 6, 1, 6, 2, 5)

	col, err := s.Hint(bot.LevelMedium)
	require.NoError(t, err)
	assert.Equal(t, 3, col)
	assert.Len(t, s.Snapshot().Moves, 6)

	res, err := s.ComputerMove(bot.LevelHard)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Move.Column)
	assert.Equal(t, domain.StatusWon, res.Outcome.Status)
}

func TestSession_LoadAndPersistAcrossSessions(t *testing.T) {
	store := memory.NewStore()
	w := persist.NewWriter(16, time.Second)

	first, err := NewSession(match.NewRecorder(10, store, w), stats.NewTracker(store, w),
		match.Names{First: "Ann", Second: "Ben"}, nil)
	require.NoError(t, err)
	res := drop(t, first, 0, 1, 0, 1, 0, 1, 0)
	w.Close()

	second, err := NewSession(match.NewRecorder(10, store, nil), stats.NewTracker(store, nil),
		match.Names{First: "Ann", Second: "Ben"}, nil)
	require.NoError(t, err)
	second.Load(context.Background())

	assert.Equal(t, first.Leaderboard(), second.Leaderboard())
	history := second.History()
	require.Len(t, history, 1)
	assert.Equal(t, res.Record.ID, history[0].ID)

	c, err := replay.New(history[0])
	require.NoError(t, err)
	assert.NoError(t, c.Verify())

	second.ResetLeaderboard()
	assert.Empty(t, second.Leaderboard())
}
