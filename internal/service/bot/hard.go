package bot

import (
	"math"

	"github.com/taskmasters/connect4/internal/domain"
)

const (
	MINIMAX_WIN  = 1000000
	MINIMAX_LOSS = -1000000
	MINIMAX_DRAW = 0

	mediumDepth = 2
)

// hardDepth keeps the search affordable on wide boards.
func hardDepth(d domain.Dimensions) int {
	switch {
	case d.Columns <= 7:
		return 6
	case d.Columns <= 10:
		return 5
	default:
		return 4
	}
}

// bestMoveMinimax searches depth plies with alpha-beta pruning for the player to move.
func bestMoveMinimax(g *domain.Game, depth int) int {
	botPlayer := g.CurrentPlayer()
	validColumns := centerOrder(g.ValidMoves(), g.Dimensions().Columns)

	bestCol := validColumns[0]
	bestScore := math.MinInt32
	alpha := math.MinInt32
	beta := math.MaxInt32

	for _, col := range validColumns {
		child := g.Clone()
		child.DropPiece(col)

		score := minimax(child, depth-1, alpha, beta, botPlayer)
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		alpha = max(alpha, bestScore)
	}

	return bestCol
}

func minimax(g *domain.Game, depth int, alpha, beta int, botPlayer domain.Player) int {
	switch outcome := g.Outcome(); outcome.Status {
	case domain.StatusWon:
		// prefer quicker wins and slower losses
		if outcome.Winner == botPlayer {
			return MINIMAX_WIN + depth
		}
		return MINIMAX_LOSS - depth
	case domain.StatusDraw:
		return MINIMAX_DRAW
	}

	if depth <= 0 {
		return evaluateBoard(g.Board(), botPlayer)
	}

	validColumns := centerOrder(g.ValidMoves(), g.Dimensions().Columns)

	if g.CurrentPlayer() == botPlayer {
		maxEval := math.MinInt32
		for _, col := range validColumns {
			child := g.Clone()
			child.DropPiece(col)

			eval := minimax(child, depth-1, alpha, beta, botPlayer)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break // Beta cutoff
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range validColumns {
		child := g.Clone()
		child.DropPiece(col)

		eval := minimax(child, depth-1, alpha, beta, botPlayer)
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break // Alpha cutoff
		}
	}
	return minEval
}

// centerOrder sorts columns by distance from the centre, which improves pruning.
func centerOrder(cols []int, width int) []int {
	center := (width - 1) / 2
	ordered := make([]int, 0, len(cols))
	for dist := 0; dist < width; dist++ {
		for _, c := range cols {
			if c == center-dist || (dist > 0 && c == center+dist) {
				ordered = append(ordered, c)
			}
		}
	}
	return ordered
}
