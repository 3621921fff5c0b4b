package bot

import (
	"math/rand"

	"github.com/taskmasters/connect4/internal/domain"
)

// bestMoveEasy wins when it can, blocks an immediate loss, otherwise plays randomly.
func bestMoveEasy(g *domain.Game, rng *rand.Rand) int {
	if col, ok := winningColumn(g); ok {
		return col
	}
	if col, ok := threatColumn(g); ok {
		return col
	}

	validColumns := g.ValidMoves()
	if rng == nil {
		return validColumns[rand.Intn(len(validColumns))]
	}
	return validColumns[rng.Intn(len(validColumns))]
}
