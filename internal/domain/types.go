package domain

import "fmt"

// Player identifies one of the two sides. The zero value is not a player.
type Player int

const (
	First  Player = 1
	Second Player = 2
)

// Next returns the player who moves after p.
func (p Player) Next() Player {
	if p == First {
		return Second
	}
	return First
}

func (p Player) Valid() bool {
	return p == First || p == Second
}

// Token is the display colour mapped to the player.
func (p Player) Token() string {
	switch p {
	case First:
		return "red"
	case Second:
		return "yellow"
	}
	return ""
}

func (p Player) String() string {
	if t := p.Token(); t != "" {
		return t
	}
	return fmt.Sprintf("Player(%d)", int(p))
}

// Cell is Empty or the player occupying it.
type Cell = Player

const Empty Cell = 0

const (
	ToWin        = 4
	MinDimension = 4
	MaxDimension = 16
)

type Dimensions struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// Standard is the classic 7 columns by 6 rows board.
var Standard = Dimensions{Columns: 7, Rows: 6}

func (d Dimensions) Validate() error {
	if d.Columns < MinDimension || d.Columns > MaxDimension {
		return fmt.Errorf("%w: %d columns (want %d..%d)", ErrInvalidDimensions, d.Columns, MinDimension, MaxDimension)
	}
	if d.Rows < MinDimension || d.Rows > MaxDimension {
		return fmt.Errorf("%w: %d rows (want %d..%d)", ErrInvalidDimensions, d.Rows, MinDimension, MaxDimension)
	}
	return nil
}

func (d Dimensions) Capacity() int {
	return d.Columns * d.Rows
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Columns, d.Rows)
}

type Move struct {
	Column int    `json:"column"`
	Player Player `json:"player"`
}

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusDraw       GameStatus = "draw"
)

// Outcome is the classification of a game. Winner is only set when Status is StatusWon.
type Outcome struct {
	Status GameStatus `json:"status"`
	Winner Player     `json:"winner,omitempty"`
}

func (o Outcome) IsTerminal() bool {
	return o.Status == StatusWon || o.Status == StatusDraw
}

// PlayState gates whether drops are accepted. It is independent of the Outcome.
type PlayState string

const (
	StatePlaying PlayState = "playing"
	StatePaused  PlayState = "paused"
)

// basic errors that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "invalid column"
	ErrColumnFull        Error = "column is full"
	ErrGameOver          Error = "game is over"
	ErrGamePaused        Error = "game is paused"
	ErrInvalidDimensions Error = "invalid board dimensions"
	ErrInvalidPlayer     Error = "invalid player"
)
