package bot

import (
	"github.com/taskmasters/connect4/internal/domain"
)

const (
	POSITION_WEIGHT     = 10
	TWO_IN_ROW_WEIGHT   = 50
	THREE_IN_ROW_WEIGHT = 500
)

// evaluateBoard scores a non-terminal position from botPlayer's point of view.
// Every window of ToWin cells on every axis counts for the side that owns it alone.
func evaluateBoard(b *domain.Board, botPlayer domain.Player) int {
	dims := b.Dimensions()
	opponent := botPlayer.Next()
	score := 0

	for col := 0; col < dims.Columns; col++ {
		for row := 0; row < dims.Rows; row++ {
			for _, axis := range domain.Axes {
				endCol := col + axis.DCol*(domain.ToWin-1)
				endRow := row + axis.DRow*(domain.ToWin-1)
				if endCol < 0 || endCol >= dims.Columns || endRow < 0 || endRow >= dims.Rows {
					continue
				}
				score += scoreWindow(b, col, row, axis, botPlayer, opponent)
			}
		}
	}

	// Center column preference
	center := (dims.Columns - 1) / 2
	for row := 0; row < dims.Rows; row++ {
		switch b.At(center, row) {
		case botPlayer:
			score += POSITION_WEIGHT * 2
		case opponent:
			score -= POSITION_WEIGHT * 2
		}
	}

	return score
}

func scoreWindow(b *domain.Board, col, row int, axis domain.Axis, botPlayer, opponent domain.Player) int {
	mine, theirs := 0, 0
	for i := 0; i < domain.ToWin; i++ {
		switch b.At(col+axis.DCol*i, row+axis.DRow*i) {
		case botPlayer:
			mine++
		case opponent:
			theirs++
		}
	}

	if mine > 0 && theirs > 0 {
		return 0
	}
	return weight(mine) - weight(theirs)
}

func weight(n int) int {
	switch n {
	case 2:
		return TWO_IN_ROW_WEIGHT
	case 3:
		return THREE_IN_ROW_WEIGHT
	}
	return 0
}
