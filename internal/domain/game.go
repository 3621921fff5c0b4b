package domain

// Game is the single-threaded state machine for one match.
// It is mutated only through Drop/DropPiece, Reset, Pause and Resume.
type Game struct {
	board          *Board
	currentPlayer  Player
	startingPlayer Player
	moves          []Move
	outcome        Outcome
	state          PlayState
}

func NewGame(dims Dimensions, starting Player) (*Game, error) {
	g := &Game{}
	if err := g.Reset(&dims, &starting); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset starts a fresh game. A nil dims keeps the previous dimensions (Standard for a new Game),
// a nil starting player means First.
func (g *Game) Reset(dims *Dimensions, starting *Player) error {
	d := Standard
	if g.board != nil {
		d = g.board.Dimensions()
	}
	if dims != nil {
		d = *dims
	}
	if err := d.Validate(); err != nil {
		return err
	}

	p := First
	if starting != nil {
		if !starting.Valid() {
			return ErrInvalidPlayer
		}
		p = *starting
	}

	g.board = NewBoard(d)
	g.currentPlayer = p
	g.startingPlayer = p
	g.moves = nil
	g.outcome = Outcome{Status: StatusInProgress}
	g.state = StatePlaying
	return nil
}

// DropPiece applies a move for the current player and reports whether it was accepted.
func (g *Game) DropPiece(col int) bool {
	_, err := g.Drop(col)
	return err == nil
}

// Drop is DropPiece with the landing row and the rejection reason.
// A rejected drop leaves the game untouched.
func (g *Game) Drop(col int) (int, error) {
	if g.outcome.IsTerminal() {
		return -1, ErrGameOver
	}
	if g.state == StatePaused {
		return -1, ErrGamePaused
	}
	if !g.board.IsValidColumn(col) {
		return -1, ErrInvalidColumn
	}
	row, ok := g.board.LowestEmptyRow(col)
	if !ok {
		return -1, ErrColumnFull
	}

	g.board.Place(col, row, g.currentPlayer)
	g.moves = append(g.moves, Move{Column: col, Player: g.currentPlayer})

	switch {
	case g.CheckWinner(col, row):
		// the winner keeps the turn
		g.outcome = Outcome{Status: StatusWon, Winner: g.currentPlayer}
	case g.board.IsFull():
		g.outcome = Outcome{Status: StatusDraw}
	default:
		g.currentPlayer = g.currentPlayer.Next()
	}
	return row, nil
}

func (g *Game) CheckWinner(col, row int) bool {
	return CheckWin(g.board, col, row)
}

// Pause is only allowed while playing an unfinished game.
func (g *Game) Pause() bool {
	if g.state != StatePlaying || g.outcome.IsTerminal() {
		return false
	}
	g.state = StatePaused
	return true
}

func (g *Game) Resume() bool {
	if g.state != StatePaused {
		return false
	}
	g.state = StatePlaying
	return true
}

func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) Dimensions() Dimensions {
	return g.board.Dimensions()
}

func (g *Game) CurrentPlayer() Player {
	return g.currentPlayer
}

func (g *Game) StartingPlayer() Player {
	return g.startingPlayer
}

func (g *Game) Outcome() Outcome {
	return g.outcome
}

func (g *Game) State() PlayState {
	return g.state
}

func (g *Game) IsFinished() bool {
	return g.outcome.IsTerminal()
}

func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

func (g *Game) MoveCount() int {
	return len(g.moves)
}

func (g *Game) LastMove() (Move, bool) {
	if len(g.moves) == 0 {
		return Move{}, false
	}
	return g.moves[len(g.moves)-1], true
}

// ValidMoves lists playable columns; empty once the game is finished.
func (g *Game) ValidMoves() []int {
	if g.outcome.IsTerminal() {
		return nil
	}
	return g.board.ValidMoves()
}

// Clone returns an independent copy, used for look-ahead without touching the live game.
func (g *Game) Clone() *Game {
	return &Game{
		board:          g.board.Clone(),
		currentPlayer:  g.currentPlayer,
		startingPlayer: g.startingPlayer,
		moves:          g.Moves(),
		outcome:        g.outcome,
		state:          g.state,
	}
}
