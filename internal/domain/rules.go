package domain

// Axis is a direction step; the opposite direction is its negation.
type Axis struct {
	DCol, DRow int
}

var Axes = [4]Axis{
	{DCol: 1, DRow: 0},  // horizontal
	{DCol: 0, DRow: 1},  // vertical
	{DCol: 1, DRow: 1},  // diagonal /
	{DCol: 1, DRow: -1}, // diagonal \
}

// CountInDirection counts contiguous pieces of player starting one step away from (col,row).
func CountInDirection(b *Board, col, row, dCol, dRow int, player Player) int {
	count := 0
	c, r := col+dCol, row+dRow
	for b.inBounds(c, r) && b.cells[c][r] == player {
		count++
		c += dCol
		r += dRow
	}
	return count
}

// RunLength is the length of the line through (col,row) along axis, including the cell itself.
func RunLength(b *Board, col, row int, axis Axis, player Player) int {
	return 1 +
		CountInDirection(b, col, row, axis.DCol, axis.DRow, player) +
		CountInDirection(b, col, row, -axis.DCol, -axis.DRow, player)
}

// CheckWin reports whether the piece at (col,row) is part of a line of at least ToWin.
// Only lines through that cell are examined, a new win can only appear there.
func CheckWin(b *Board, col, row int) bool {
	player := b.At(col, row)
	if player == Empty {
		return false
	}
	for _, axis := range Axes {
		if RunLength(b, col, row, axis, player) >= ToWin {
			return true
		}
	}
	return false
}
