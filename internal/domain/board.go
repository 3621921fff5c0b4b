package domain

// Board is a column-major grid. Row 0 is the bottom of each column, pieces stack upward.
type Board struct {
	dims  Dimensions
	cells [][]Cell // cells[col][row]
}

func NewBoard(dims Dimensions) *Board {
	cells := make([][]Cell, dims.Columns)
	for c := range cells {
		cells[c] = make([]Cell, dims.Rows)
	}
	return &Board{dims: dims, cells: cells}
}

func (b *Board) Dimensions() Dimensions {
	return b.dims
}

func (b *Board) IsValidColumn(col int) bool {
	return col >= 0 && col < b.dims.Columns
}

func (b *Board) inBounds(col, row int) bool {
	return b.IsValidColumn(col) && row >= 0 && row < b.dims.Rows
}

// LowestEmptyRow returns the row a piece dropped into col would land on.
// ok is false when the column is full or does not exist.
func (b *Board) LowestEmptyRow(col int) (row int, ok bool) {
	if !b.IsValidColumn(col) {
		return -1, false
	}
	for r := 0; r < b.dims.Rows; r++ {
		if b.cells[col][r] == Empty {
			return r, true
		}
	}
	return -1, false
}

// Place writes player at (col,row). The caller must have obtained row from LowestEmptyRow.
func (b *Board) Place(col, row int, player Player) {
	b.cells[col][row] = player
}

// At returns Empty for coordinates outside the board.
func (b *Board) At(col, row int) Cell {
	if !b.inBounds(col, row) {
		return Empty
	}
	return b.cells[col][row]
}

// ColumnHeight is the number of pieces stacked in col.
func (b *Board) ColumnHeight(col int) int {
	if !b.IsValidColumn(col) {
		return 0
	}
	row, ok := b.LowestEmptyRow(col)
	if !ok {
		return b.dims.Rows
	}
	return row
}

func (b *Board) IsFull() bool {
	// gravity means a column is full iff its top cell is taken
	top := b.dims.Rows - 1
	for c := 0; c < b.dims.Columns; c++ {
		if b.cells[c][top] == Empty {
			return false
		}
	}
	return true
}

// ValidMoves lists the columns that can still take a piece, left to right.
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, b.dims.Columns)
	for c := 0; c < b.dims.Columns; c++ {
		if _, ok := b.LowestEmptyRow(c); ok {
			moves = append(moves, c)
		}
	}
	return moves
}

// Cells returns a column-major copy of the grid.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, len(b.cells))
	for c := range b.cells {
		out[c] = make([]Cell, len(b.cells[c]))
		copy(out[c], b.cells[c])
	}
	return out
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	return &Board{dims: b.dims, cells: b.Cells()}
}
