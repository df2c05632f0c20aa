package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

var (
	ErrInvalidCellValue = errors.New("invalid cell value")
	ErrFloatingPiece    = errors.New("piece above an empty cell")
)

// Cell is the occupancy of one board position.
type Cell uint8

const (
	EmptyCell Cell = iota
	CellA
	CellB
)

// Player - returns the owner of the cell, NoPlayer for an empty one.
func (that Cell) Player() Player {
	switch that {
	case CellA:
		return PlayerA
	case CellB:
		return PlayerB
	default:
		return NoPlayer
	}
}

// Board is the grid with row 0 at the top and row Rows-1 at the bottom.
// It is an array, so plain assignment produces an independent snapshot.
type Board [Rows][Columns]Cell

// EmptyBoard - returns a board with every cell empty.
func EmptyBoard() Board {
	return Board{}
}

// ValidColumn - reports whether col addresses a board column.
func ValidColumn(col int) bool {
	return col >= 0 && col < Columns
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

func (that *Board) Cell(row, col int) Cell {
	return that[row][col]
}

// IsColumnFull - true iff the top cell of the column is occupied.
func (that *Board) IsColumnFull(col int) bool {
	return that[0][col] != EmptyCell
}

// Drop - places the player's piece in the lowest empty cell of col and returns the landing row.
func (that *Board) Drop(col int, player Player) (int, error) {
	if !ValidColumn(col) {
		return -1, fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, col)
	}

	if that.IsColumnFull(col) {
		return -1, apperror.ErrColumnFull
	}

	for row := Rows - 1; row >= 0; row-- {
		if that[row][col] == EmptyCell {
			that[row][col] = player.Cell()
			return row, nil
		}
	}

	// unreachable while the gravity invariant holds
	return -1, apperror.ErrColumnFull
}

// IsFull - true when no column accepts another piece.
func (that *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if !that.IsColumnFull(col) {
			return false
		}
	}

	return true
}

// Pieces - counts occupied cells.
func (that *Board) Pieces() int {
	count := 0
	for row := range that {
		for col := range that[row] {
			if that[row][col] != EmptyCell {
				count++
			}
		}
	}

	return count
}

// Validate - checks the cell domain and that no piece floats above an empty cell.
func (that *Board) Validate() error {
	for col := 0; col < Columns; col++ {
		seenPiece := false
		for row := 0; row < Rows; row++ {
			switch that[row][col] {
			case CellA, CellB:
				seenPiece = true
			case EmptyCell:
				if seenPiece {
					return fmt.Errorf("%w: row %d column %d", ErrFloatingPiece, row, col)
				}
			default:
				return fmt.Errorf("%w: %d at row %d column %d", ErrInvalidCellValue, that[row][col], row, col)
			}
		}
	}

	return nil
}
