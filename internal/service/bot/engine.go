package bot

import (
	"math/rand"

	"github.com/taskmasters/connect4/internal/domain"
)

type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

const ErrNoMoves domain.Error = "no moves available"

func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelEasy, LevelMedium, LevelHard:
		return Level(s), true
	case "":
		return LevelMedium, true
	}
	return "", false
}

// Suggest picks a column for the player to move in g. g itself is never modified.
func Suggest(g *domain.Game, level Level, rng *rand.Rand) (int, error) {
	if g.IsFinished() || len(g.ValidMoves()) == 0 {
		return -1, ErrNoMoves
	}

	search := g.Clone()
	// look-ahead must be able to drop on a paused game
	search.Resume()

	switch level {
	case LevelEasy:
		return bestMoveEasy(search, rng), nil
	case LevelHard:
		return bestMoveMinimax(search, hardDepth(search.Dimensions())), nil
	default:
		return bestMoveMinimax(search, mediumDepth), nil
	}
}

// winningColumn returns a column that wins immediately for the player to move in g.
func winningColumn(g *domain.Game) (int, bool) {
	for _, col := range g.ValidMoves() {
		next := g.Clone()
		next.DropPiece(col)
		if next.Outcome().Status == domain.StatusWon {
			return col, true
		}
	}
	return -1, false
}

// threatColumn returns a column where the opponent of the player to move would win.
func threatColumn(g *domain.Game) (int, bool) {
	opponent := g.CurrentPlayer().Next()
	b := g.Board()
	for _, col := range g.ValidMoves() {
		row, _ := b.LowestEmptyRow(col)
		b.Place(col, row, opponent)
		won := domain.CheckWin(b, col, row)
		b.Place(col, row, domain.Empty)
		if won {
			return col, true
		}
	}
	return -1, false
}
