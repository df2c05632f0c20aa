package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay - applies columns from an empty board the way a session would and
// returns the final board, player to move and the recorded history.
func replay(t *testing.T, columns ...int) (Board, Player, []MoveRecord) {
	t.Helper()

	board := EmptyBoard()
	turn := PlayerA
	var records []MoveRecord

	for _, col := range columns {
		records = append(records, MoveRecord{Board: board, Player: turn})

		row, err := board.Drop(col, turn)
		require.NoError(t, err)

		if CheckWin(&board, row, col) {
			return board, turn, records
		}
		turn = turn.Opponent()
	}

	return board, turn, records
}

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame()

	// Then: it matches the initial state
	expectedGame := &Game{
		Board:  EmptyBoard(),
		Turn:   PlayerA,
		Winner: NoPlayer,
	}

	require.Equal(t, expectedGame, game)
	assert.Equal(t, StatusInProgress, game.Status())
	assert.False(t, game.IsWon())
}

func TestGame_Clone(t *testing.T) {
	// Given: a game with one recorded move
	game := NewGame()
	game.History.Push(MoveRecord{Board: game.Board, Player: PlayerA})
	_, err := game.Board.Drop(0, PlayerA)
	require.NoError(t, err)

	// When: the clone is mutated
	clone := game.Clone()
	_, err = clone.Board.Drop(0, PlayerB)
	require.NoError(t, err)
	clone.History.Clear()

	// Then: the source game is untouched
	assert.Equal(t, 1, game.Board.Pieces())
	assert.Equal(t, 1, game.History.Len())
}

func TestRestoreGame(t *testing.T) {
	t.Run("Empty game", func(t *testing.T) {
		game, err := RestoreGame(EmptyBoard(), PlayerA, nil)

		require.NoError(t, err)
		assert.Equal(t, NewGame(), game)
	})

	t.Run("Game in progress", func(t *testing.T) {
		// Given: three moves played
		board, turn, records := replay(t, 3, 3, 4)

		// When: the parts are restored
		game, err := RestoreGame(board, turn, records)

		// Then: the game matches what was played
		require.NoError(t, err)
		assert.Equal(t, board, game.Board)
		assert.Equal(t, PlayerB, game.Turn)
		assert.Equal(t, NoPlayer, game.Winner)
		assert.Equal(t, records, game.History.Records())
	})

	t.Run("Won game derives the winner", func(t *testing.T) {
		// Given: A wins vertically in column 0
		board, turn, records := replay(t, 0, 1, 0, 1, 0, 1, 0)
		require.Equal(t, PlayerA, turn)

		// When: the parts are restored
		game, err := RestoreGame(board, turn, records)

		// Then: the winner is A and the turn was not swapped
		require.NoError(t, err)
		assert.Equal(t, PlayerA, game.Winner)
		assert.Equal(t, StatusWon, game.Status())
		assert.Equal(t, 7, game.History.Len())
	})

	t.Run("Empty board with B to move is rejected", func(t *testing.T) {
		_, err := RestoreGame(EmptyBoard(), PlayerB, nil)

		require.ErrorIs(t, err, ErrUnexpectedTurn)
	})

	t.Run("Piece count not matching history is rejected", func(t *testing.T) {
		board, turn, records := replay(t, 2, 2)

		_, err := RestoreGame(board, turn, records[:1])

		require.ErrorIs(t, err, ErrInconsistentHistory)
	})

	t.Run("Wrong current player is rejected", func(t *testing.T) {
		board, turn, records := replay(t, 2, 2)

		_, err := RestoreGame(board, turn.Opponent(), records)

		require.ErrorIs(t, err, ErrUnexpectedTurn)
	})

	t.Run("Non alternating movers are rejected", func(t *testing.T) {
		board, turn, records := replay(t, 2, 3)
		records[1].Player = PlayerA

		_, err := RestoreGame(board, turn, records)

		require.ErrorIs(t, err, ErrInconsistentHistory)
	})

	t.Run("Snapshot that is not a single drop is rejected", func(t *testing.T) {
		// Given: history whose second snapshot moved A's piece to another column
		board, turn, records := replay(t, 2, 3)
		records[1].Board = EmptyBoard()
		records[1].Board[Rows-1][5] = CellA

		_, err := RestoreGame(board, turn, records)

		require.ErrorIs(t, err, ErrInconsistentHistory)
	})

	t.Run("Unknown current player is rejected", func(t *testing.T) {
		_, err := RestoreGame(EmptyBoard(), NoPlayer, nil)

		require.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("Floating piece is rejected", func(t *testing.T) {
		board := EmptyBoard()
		board[0][0] = CellA

		_, err := RestoreGame(board, PlayerB, []MoveRecord{{Board: EmptyBoard(), Player: PlayerA}})

		require.ErrorIs(t, err, ErrFloatingPiece)
	})
}

func TestPlayer(t *testing.T) {
	for _, player := range []Player{PlayerA, PlayerB} {
		parsed, err := ParsePlayer(player.String())
		require.NoError(t, err)
		assert.Equal(t, player, parsed)
		assert.Equal(t, player, player.Cell().Player())
		assert.Equal(t, player, player.Opponent().Opponent())
	}

	_, err := ParsePlayer("red")
	require.ErrorIs(t, err, ErrUnknownPlayer)
	assert.Equal(t, NoPlayer, NoPlayer.Opponent())
}
