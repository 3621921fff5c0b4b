package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_LowestEmptyRow(t *testing.T) {
	b := NewBoard(Dimensions{Columns: 5, Rows: 4})

	row, ok := b.LowestEmptyRow(2)
	assert.True(t, ok)
	assert.Equal(t, 0, row)

	for r := 0; r < 4; r++ {
		row, ok := b.LowestEmptyRow(2)
		assert.True(t, ok)
		assert.Equal(t, r, row)
		b.Place(2, row, First)
	}

	_, ok = b.LowestEmptyRow(2)
	assert.False(t, ok, "full column")
	_, ok = b.LowestEmptyRow(-1)
	assert.False(t, ok, "negative column")
	_, ok = b.LowestEmptyRow(5)
	assert.False(t, ok, "column past the edge")
	assert.Equal(t, 4, b.ColumnHeight(2))
}

func TestBoard_IsFullAndValidMoves(t *testing.T) {
	dims := Dimensions{Columns: 4, Rows: 4}
	b := NewBoard(dims)
	assert.Equal(t, []int{0, 1, 2, 3}, b.ValidMoves())

	for c := 0; c < dims.Columns; c++ {
		for r := 0; r < dims.Rows; r++ {
			assert.False(t, b.IsFull())
			b.Place(c, r, Second)
		}
	}
	assert.True(t, b.IsFull())
	assert.Empty(t, b.ValidMoves())
}

func TestBoard_AtOutOfBounds(t *testing.T) {
	b := NewBoard(Standard)
	assert.Equal(t, Empty, b.At(-1, 0))
	assert.Equal(t, Empty, b.At(0, Standard.Rows))
	assert.False(t, b.IsValidColumn(Standard.Columns))
	assert.True(t, b.IsValidColumn(0))
}

func TestCheckWin_OnlyMatchingPlayer(t *testing.T) {
	b := NewBoard(Standard)
	b.Place(0, 0, First)
	b.Place(1, 0, First)
	b.Place(2, 0, Second)
	b.Place(3, 0, First)

	assert.False(t, CheckWin(b, 3, 0))
	assert.False(t, CheckWin(b, 5, 5), "empty cell never wins")
	assert.Equal(t, 2, RunLength(b, 0, 0, Axes[0], First))
}

func TestCheckWin_LongerThanFour(t *testing.T) {
	b := NewBoard(Dimensions{Columns: 8, Rows: 4})
	for _, c := range []int{0, 1, 2, 4, 5} {
		b.Place(c, 0, Second)
	}
	b.Place(3, 0, Second)
	assert.True(t, CheckWin(b, 3, 0))
	assert.Equal(t, 6, RunLength(b, 3, 0, Axes[0], Second))
}

func TestPlayer_Next(t *testing.T) {
	assert.Equal(t, Second, First.Next())
	assert.Equal(t, First, Second.Next())
	assert.Equal(t, "red", First.Token())
	assert.Equal(t, "yellow", Second.Token())
	assert.False(t, Empty.Valid())
}

func TestSortLeaderboard(t *testing.T) {
	entries := []PlayerStats{
		{Name: "carol", Wins: 1, TotalGames: 2},
		{Name: "alice", Wins: 0, TotalGames: 3},
		{Name: "bob", Wins: 2, TotalGames: 2},
		{Name: "dave", Wins: 2, TotalGames: 4},
		{Name: "erin", Wins: 0, TotalGames: 0},
		{Name: "aaron", Wins: 1, TotalGames: 2},
	}
	SortLeaderboard(entries)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"bob", "dave", "aaron", "carol", "alice", "erin"}, names)
	assert.Equal(t, 0.5, entries[1].WinRate())
	assert.Zero(t, entries[5].WinRate())
}
