package entity

// axes are the four line directions; each is walked both ways from the placed piece.
var axes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{-1, 1}, // diagonal up-right
}

// CheckWin - reports whether the piece at (row, col) is part of ToWin or more
// same-player cells along a single axis. Only cells within ToWin-1 steps of the
// piece are inspected.
func CheckWin(board *Board, row, col int) bool {
	if !inBounds(row, col) {
		return false
	}

	cell := board[row][col]
	if cell == EmptyCell {
		return false
	}

	for _, axis := range axes {
		count := 1 + countRun(board, row, col, axis[0], axis[1], cell) + countRun(board, row, col, -axis[0], -axis[1], cell)
		if count >= ToWin {
			return true
		}
	}

	return false
}

// countRun - counts consecutive cells equal to cell, stepping (dRow, dCol) away from (row, col).
func countRun(board *Board, row, col, dRow, dCol int, cell Cell) int {
	count := 0
	for step := 1; step < ToWin; step++ {
		r, c := row+step*dRow, col+step*dCol
		if !inBounds(r, c) || board[r][c] != cell {
			break
		}
		count++
	}

	return count
}
