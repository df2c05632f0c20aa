package connectfour

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// Session drives a single game. It is not safe for concurrent use; callers
// that share one across goroutines must serialize access.
type Session struct {
	game *entity.Game
}

// NewSession - wraps game, or a fresh game when nil. The session takes ownership of game.
func NewSession(game *entity.Game) *Session {
	if game == nil {
		game = entity.NewGame()
	}

	return &Session{game: game}
}

// Play - drops the current player's piece into column. Moves after a win and
// moves into a full column are ignored; changed reports whether state moved.
func (that *Session) Play(column int) (bool, error) {
	if !entity.ValidColumn(column) {
		return false, fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, column)
	}

	if that.game.IsWon() || that.game.Board.IsColumnFull(column) {
		return false, nil
	}

	// the snapshot must be taken before the board is mutated
	record := entity.MoveRecord{Board: that.game.Board, Player: that.game.Turn}

	row, err := that.game.Board.Drop(column, that.game.Turn)
	if errors.Is(err, apperror.ErrColumnFull) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to drop piece: %w", err)
	}

	that.game.History.Push(record)
	updateGameStatus(that.game, row, column)

	return true, nil
}

// Undo - steps back one move. It does nothing once the game is won or when there is nothing to undo.
func (that *Session) Undo() bool {
	if that.game.IsWon() {
		return false
	}

	record, err := that.game.History.Pop()
	if err != nil {
		return false
	}

	that.game.Board = record.Board
	that.game.Turn = record.Player
	that.game.Winner = entity.NoPlayer

	return true
}

// Reset - returns to an empty board with player A to move and no history.
func (that *Session) Reset() {
	that.game.Board = entity.EmptyBoard()
	that.game.Turn = entity.PlayerA
	that.game.Winner = entity.NoPlayer
	that.game.History.Clear()
}

func (that *Session) Board() entity.Board {
	return that.game.Board
}

func (that *Session) CurrentPlayer() entity.Player {
	return that.game.Turn
}

// Winner - returns NoPlayer while the game is in progress.
func (that *Session) Winner() entity.Player {
	return that.game.Winner
}

func (that *Session) Status() string {
	return that.game.Status()
}

// HistoryDepth - number of moves that can be undone; used to enable an undo control.
func (that *Session) HistoryDepth() int {
	return that.game.History.Len()
}

// IsDraw - true when the board is full and nobody won.
func (that *Session) IsDraw() bool {
	return that.game.IsDraw()
}

// Snapshot - returns a deep copy of the full state.
func (that *Session) Snapshot() *entity.Game {
	return that.game.Clone()
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, row, column int) {
	if entity.CheckWin(&game.Board, row, column) {
		game.Winner = game.Turn
		return
	}

	game.Turn = game.Turn.Opponent()
}
