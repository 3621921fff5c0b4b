package game

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/taskmasters/connect4/internal/domain"
	"github.com/taskmasters/connect4/internal/service/bot"
	"github.com/taskmasters/connect4/internal/service/match"
	"github.com/taskmasters/connect4/internal/service/replay"
	"github.com/taskmasters/connect4/internal/service/stats"
)

const (
	ErrInvalidNames domain.Error = "player names must be distinct, non-empty and at most 64 characters"
	ErrInvalidBoard domain.Error = "unknown board type"
	ErrNoReplay     domain.Error = "no replay in progress"
)

// MaxNameLength matches the width of the name columns in the stores.
const MaxNameLength = 64

type BoardType string

const (
	BoardStandard BoardType = "standard"
	BoardRandom   BoardType = "random"
	BoardCustom   BoardType = "custom"
)

// Ranges used when a random board is requested.
const (
	RandomMinColumns = 5
	RandomMaxColumns = 10
	RandomMinRows    = 4
	RandomMaxRows    = 8
)

type ResetOptions struct {
	BoardType            BoardType         `json:"board_type"`
	Dimensions           domain.Dimensions `json:"dimensions"`
	RandomStartingPlayer bool              `json:"random_starting_player"`
}

type DropResult struct {
	Move    domain.Move         `json:"move"`
	Row     int                 `json:"row"`
	Outcome domain.Outcome      `json:"outcome"`
	Record  *domain.MatchRecord `json:"record,omitempty"`
}

// Snapshot is everything a presentation layer needs to draw the live game.
type Snapshot struct {
	Board          [][]domain.Cell   `json:"board"` // column-major, row 0 at the bottom
	Dimensions     domain.Dimensions `json:"dimensions"`
	CurrentPlayer  domain.Player     `json:"current_player"`
	StartingPlayer domain.Player     `json:"starting_player"`
	Outcome        domain.Outcome    `json:"outcome"`
	State          domain.PlayState  `json:"state"`
	Names          match.Names       `json:"names"`
	WinnerName     string            `json:"winner_name,omitempty"`
	LastMove       *domain.Move      `json:"last_move,omitempty"`
	Moves          []domain.Move     `json:"moves"`
}

type ReplayStatus struct {
	MatchID  string            `json:"match_id"`
	Applied  int               `json:"applied"`
	Total    int               `json:"total"`
	Done     bool              `json:"done"`
	LastMove *domain.Move      `json:"last_move,omitempty"`
	Board    [][]domain.Cell   `json:"board"`
	Outcome  domain.Outcome    `json:"outcome"`
	Dims     domain.Dimensions `json:"dimensions"`
}

// Session is the application state shared by the presentation layer: the live game,
// the player names, match history, leaderboard and an optional replay.
// The domain engine is single-threaded; Session serialises access to it.
type Session struct {
	mu       sync.Mutex
	game     *domain.Game
	names    match.Names
	recorder *match.Recorder
	tracker  *stats.Tracker
	notifier Notifier
	replay   *replay.Controller
	rng      *rand.Rand
	now      func() time.Time
}

type Option func(*Session)

// WithRand fixes the source used for random boards, starting players and the easy computer.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(recorder *match.Recorder, tracker *stats.Tracker, names match.Names, notifier Notifier, opts ...Option) (*Session, error) {
	if err := validateNames(names); err != nil {
		return nil, err
	}
	if notifier == nil {
		notifier = Notifiers(nil)
	}

	g, err := domain.NewGame(domain.Standard, domain.First)
	if err != nil {
		return nil, err
	}

	s := &Session{
		game:     g,
		names:    names,
		recorder: recorder,
		tracker:  tracker,
		notifier: notifier,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reconciles statistics and match history with the stores.
// Failures are logged; the session keeps working on what it has in memory.
func (s *Session) Load(ctx context.Context) {
	if err := s.tracker.Load(ctx); err != nil {
		log.Warnf("[SESSION] %v", err)
	}
	if err := s.recorder.Load(ctx); err != nil {
		log.Warnf("[SESSION] %v", err)
	}
}

// DropPiece plays col for the current player. A rejected move returns the domain
// error and leaves the game untouched.
func (s *Session) DropPiece(col int) (DropResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropLocked(col)
}

func (s *Session) dropLocked(col int) (DropResult, error) {
	player := s.game.CurrentPlayer()
	row, err := s.game.Drop(col)
	if err != nil {
		return DropResult{}, err
	}

	move := domain.Move{Column: col, Player: player}
	result := DropResult{Move: move, Row: row, Outcome: s.game.Outcome()}
	s.notifier.PieceDropped(move, row)

	switch result.Outcome.Status {
	case domain.StatusWon:
		winner := result.Outcome.Winner
		s.notifier.GameWon(winner, s.names.For(winner))

		rec, err := s.recorder.Record(s.game, s.names, s.now())
		if err != nil {
			// unreachable for a won game
			log.Errorf("[SESSION] failed to record match: %v", err)
			break
		}
		result.Record = &rec
		s.tracker.RecordResult(rec.WinnerName, rec.LoserName)
	case domain.StatusDraw:
		s.notifier.GameDrawn()
		s.tracker.RecordDraw()
	}
	return result, nil
}

// ComputerMove lets the computer play the current player's turn.
func (s *Session) ComputerMove(level bot.Level) (DropResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.State() == domain.StatePaused {
		return DropResult{}, domain.ErrGamePaused
	}
	col, err := bot.Suggest(s.game, level, s.rng)
	if err != nil {
		return DropResult{}, err
	}
	return s.dropLocked(col)
}

// Hint suggests a column for the current player without playing it.
func (s *Session) Hint(level bot.Level) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bot.Suggest(s.game, level, s.rng)
}

func (s *Session) Pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Pause()
}

func (s *Session) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Resume()
}

// Reset starts a new game. Random choices are drawn here and nowhere else.
func (s *Session) Reset(opts ResetOptions) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dims domain.Dimensions
	switch opts.BoardType {
	case BoardStandard, "":
		dims = domain.Standard
	case BoardRandom:
		dims = domain.Dimensions{
			Columns: RandomMinColumns + s.rng.Intn(RandomMaxColumns-RandomMinColumns+1),
			Rows:    RandomMinRows + s.rng.Intn(RandomMaxRows-RandomMinRows+1),
		}
	case BoardCustom:
		dims = opts.Dimensions
	default:
		return Snapshot{}, ErrInvalidBoard
	}

	starting := domain.First
	if opts.RandomStartingPlayer && s.rng.Intn(2) == 1 {
		starting = domain.Second
	}

	if err := s.game.Reset(&dims, &starting); err != nil {
		return Snapshot{}, err
	}

	log.WithFields(log.Fields{
		"board":    dims.String(),
		"starting": starting,
	}).Info("[SESSION] New game")
	return s.snapshotLocked(), nil
}

// SetPlayerNames changes the names used for records and the leaderboard from now on.
func (s *Session) SetPlayerNames(first, second string) error {
	names := match.Names{First: strings.TrimSpace(first), Second: strings.TrimSpace(second)}
	if err := validateNames(names); err != nil {
		return err
	}

	s.mu.Lock()
	s.names = names
	s.mu.Unlock()
	return nil
}

func validateNames(n match.Names) error {
	if n.First == "" || n.Second == "" || n.First == n.Second {
		return ErrInvalidNames
	}
	if utf8.RuneCountInString(n.First) > MaxNameLength || utf8.RuneCountInString(n.Second) > MaxNameLength {
		return ErrInvalidNames
	}
	return nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// WithSnapshot calls fn with the current state while holding the session lock.
// No move can be played and no event emitted until fn returns, so fn must not call back into the session.
func (s *Session) WithSnapshot(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snapshotLocked())
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Board:          s.game.Board().Cells(),
		Dimensions:     s.game.Dimensions(),
		CurrentPlayer:  s.game.CurrentPlayer(),
		StartingPlayer: s.game.StartingPlayer(),
		Outcome:        s.game.Outcome(),
		State:          s.game.State(),
		Names:          s.names,
		Moves:          s.game.Moves(),
	}
	if last, ok := s.game.LastMove(); ok {
		snap.LastMove = &last
	}
	if snap.Outcome.Status == domain.StatusWon {
		snap.WinnerName = s.names.For(snap.Outcome.Winner)
	}
	return snap
}

func (s *Session) History() []domain.MatchRecord {
	return s.recorder.History()
}

func (s *Session) Match(id string) (domain.MatchRecord, error) {
	return s.recorder.Get(id)
}

func (s *Session) Leaderboard() []domain.PlayerStats {
	return s.tracker.Leaderboard()
}

func (s *Session) Draws() int {
	return s.tracker.Draws()
}

// ResetLeaderboard wipes all player statistics, in memory and in the store.
func (s *Session) ResetLeaderboard() {
	s.tracker.Reset()
}

// StartReplay prepares a step-by-step replay of a recorded match on its own engine.
// The live game is not affected.
func (s *Session) StartReplay(matchID string) (ReplayStatus, error) {
	rec, err := s.recorder.Get(matchID)
	if err != nil {
		return ReplayStatus{}, err
	}
	c, err := replay.New(rec)
	if err != nil {
		return ReplayStatus{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replay = c
	return replayStatus(c, nil), nil
}

// StepReplay applies exactly one recorded move.
func (s *Session) StepReplay() (ReplayStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replay == nil {
		return ReplayStatus{}, ErrNoReplay
	}
	m, ok, err := s.replay.Step()
	if err != nil {
		return replayStatus(s.replay, nil), err
	}
	if !ok {
		return replayStatus(s.replay, nil), nil
	}
	return replayStatus(s.replay, &m), nil
}

func (s *Session) ReplayStatus() (ReplayStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replay == nil {
		return ReplayStatus{}, ErrNoReplay
	}
	return replayStatus(s.replay, nil), nil
}

// StopReplay abandons the replay; its partial state is simply discarded.
func (s *Session) StopReplay() {
	s.mu.Lock()
	s.replay = nil
	s.mu.Unlock()
}

func replayStatus(c *replay.Controller, last *domain.Move) ReplayStatus {
	g := c.Game()
	return ReplayStatus{
		MatchID:  c.Record().ID,
		Applied:  c.Applied(),
		Total:    c.Applied() + c.Remaining(),
		Done:     c.Done(),
		LastMove: last,
		Board:    g.Board().Cells(),
		Outcome:  g.Outcome(),
		Dims:     g.Dimensions(),
	}
}
