package entity

import (
	"errors"
	"fmt"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
)

var (
	ErrInconsistentHistory = errors.New("move history does not match the board")
	ErrUnexpectedTurn      = errors.New("current player does not follow the move history")
)

// Game is the complete state of one game.
type Game struct {
	Board   Board
	Turn    Player
	Winner  Player
	History History
}

// NewGame - returns the initial state: empty board, player A to move, no history.
func NewGame() *Game {
	return &Game{
		Board: EmptyBoard(),
		Turn:  PlayerA,
	}
}

func (that *Game) IsWon() bool {
	return that.Winner != NoPlayer
}

// IsDraw - true when the board is full and nobody won.
func (that *Game) IsDraw() bool {
	return !that.IsWon() && that.Board.IsFull()
}

func (that *Game) Status() string {
	if that.IsWon() {
		return StatusWon
	}

	return StatusInProgress
}

// Clone - returns a copy that shares nothing with the receiver.
func (that *Game) Clone() *Game {
	clone := *that
	clone.History = History{records: that.History.Records()}

	return &clone
}

// RestoreGame - rebuilds a game from persisted parts and checks that they describe a
// reachable position. The winner is not stored; it is derived from the last recorded move.
func RestoreGame(board Board, turn Player, records []MoveRecord) (*Game, error) {
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board: %w", err)
	}

	if !turn.Valid() {
		return nil, fmt.Errorf("%w: current player %d", ErrUnknownPlayer, turn)
	}

	if board.Pieces() != len(records) {
		return nil, fmt.Errorf("%w: %d pieces, %d records", ErrInconsistentHistory, board.Pieces(), len(records))
	}

	game := &Game{Board: board, Turn: turn}

	if len(records) == 0 {
		if turn != PlayerA {
			return nil, fmt.Errorf("%w: %s to move on an empty board", ErrUnexpectedTurn, turn)
		}

		return game, nil
	}

	for i, record := range records {
		after := board
		if i+1 < len(records) {
			after = records[i+1].Board
		}

		if err := verifyMove(i, record, after, records); err != nil {
			return nil, err
		}

		// a finished game accepts no further moves, so only the last one may win
		row, col := landingCell(&record.Board, &after)
		won := CheckWin(&after, row, col)
		if won && i+1 < len(records) {
			return nil, fmt.Errorf("%w: move %d wins but the game continues", ErrInconsistentHistory, i+1)
		}

		if won {
			game.Winner = record.Player
		}

		game.History.Push(record)
	}

	last := records[len(records)-1].Player
	expected := last.Opponent()
	if game.IsWon() {
		expected = last
	}

	if turn != expected {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrUnexpectedTurn, turn, expected)
	}

	return game, nil
}

// verifyMove - checks that after differs from record.Board by exactly one piece of
// record.Player dropped under gravity, and that movers alternate.
func verifyMove(i int, record MoveRecord, after Board, records []MoveRecord) error {
	if !record.Player.Valid() {
		return fmt.Errorf("%w: move %d", ErrUnknownPlayer, i+1)
	}

	if i == 0 && record.Player != PlayerA {
		return fmt.Errorf("%w: first move by %s", ErrInconsistentHistory, record.Player)
	}

	if i > 0 && records[i-1].Player == record.Player {
		return fmt.Errorf("%w: %s moved twice in a row at move %d", ErrInconsistentHistory, record.Player, i+1)
	}

	if err := record.Board.Validate(); err != nil {
		return fmt.Errorf("%w: move %d: %w", ErrInconsistentHistory, i+1, err)
	}

	expected := record.Board
	row, col := landingCell(&record.Board, &after)
	if row < 0 {
		return fmt.Errorf("%w: move %d changes no cell", ErrInconsistentHistory, i+1)
	}

	if _, err := expected.Drop(col, record.Player); err != nil {
		return fmt.Errorf("%w: move %d: %w", ErrInconsistentHistory, i+1, err)
	}

	if expected != after {
		return fmt.Errorf("%w: move %d is not a single drop", ErrInconsistentHistory, i+1)
	}

	return nil
}

// landingCell - returns the first cell, scanning top-down, that is empty in before and occupied in after.
func landingCell(before, after *Board) (int, int) {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if before[row][col] == EmptyCell && after[row][col] != EmptyCell {
				return row, col
			}
		}
	}

	return -1, -1
}
