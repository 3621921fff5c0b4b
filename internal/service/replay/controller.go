package replay

import (
	"fmt"

	"github.com/taskmasters/connect4/internal/domain"
)

const (
	ErrMalformedRecord domain.Error = "malformed match record"
	ErrMoveRejected    domain.Error = "recorded move rejected"
	ErrOutcomeMismatch domain.Error = "replay outcome differs from record"
)

// Controller re-applies a recorded match to a fresh game, one move per Step.
// The caller decides the pacing; stopping early leaves a valid partial game.
type Controller struct {
	record  domain.MatchRecord
	game    *domain.Game
	applied int
}

// New validates rec and prepares a fresh game of the recorded dimensions.
func New(rec domain.MatchRecord) (*Controller, error) {
	if err := rec.Dimensions.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(rec.Moves) == 0 {
		return nil, fmt.Errorf("%w: no moves", ErrMalformedRecord)
	}
	if capacity := rec.Dimensions.Capacity(); len(rec.Moves) > capacity {
		return nil, fmt.Errorf("%w: %d moves exceed board capacity %d", ErrMalformedRecord, len(rec.Moves), capacity)
	}
	if !rec.Winner.Valid() || rec.Loser != rec.Winner.Next() {
		return nil, fmt.Errorf("%w: winner %v and loser %v are not opponents", ErrMalformedRecord, rec.Winner, rec.Loser)
	}
	for i, m := range rec.Moves {
		if m.Column < 0 || m.Column >= rec.Dimensions.Columns {
			return nil, fmt.Errorf("%w: move %d targets column %d on a %s board", ErrMalformedRecord, i, m.Column, rec.Dimensions)
		}
		if !m.Player.Valid() {
			return nil, fmt.Errorf("%w: move %d has no player", ErrMalformedRecord, i)
		}
	}

	// the player tag of the first move settles who started
	g, err := domain.NewGame(rec.Dimensions, rec.Moves[0].Player)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return &Controller{record: rec, game: g}, nil
}

// Step applies the next recorded move. ok is false once every move has been applied.
func (c *Controller) Step() (domain.Move, bool, error) {
	if c.Done() {
		return domain.Move{}, false, nil
	}

	m := c.record.Moves[c.applied]
	if current := c.game.CurrentPlayer(); m.Player != current {
		return m, false, fmt.Errorf("%w: move %d is tagged %v but %v is to play", ErrMoveRejected, c.applied, m.Player, current)
	}
	if _, err := c.game.Drop(m.Column); err != nil {
		return m, false, fmt.Errorf("%w: move %d in column %d: %v", ErrMoveRejected, c.applied, m.Column, err)
	}
	c.applied++
	return m, true, nil
}

// Run applies all remaining moves.
func (c *Controller) Run() error {
	for {
		_, ok, err := c.Step()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// Verify runs the replay to the end and checks it reproduces the recorded win.
func (c *Controller) Verify() error {
	if err := c.Run(); err != nil {
		return err
	}
	want := domain.Outcome{Status: domain.StatusWon, Winner: c.record.Winner}
	if got := c.game.Outcome(); got != want {
		return fmt.Errorf("%w: got %+v, want %+v", ErrOutcomeMismatch, got, want)
	}
	return nil
}

// Game is the engine being driven. Callers must treat it as read-only.
func (c *Controller) Game() *domain.Game {
	return c.game
}

func (c *Controller) Record() domain.MatchRecord {
	return c.record
}

func (c *Controller) Applied() int {
	return c.applied
}

func (c *Controller) Remaining() int {
	return len(c.record.Moves) - c.applied
}

func (c *Controller) Done() bool {
	return c.applied >= len(c.record.Moves)
}
