package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const boardLength = entity.Rows * entity.Columns

var ErrMalformedState = errors.New("malformed stored state")

// moveRecordJSON is the stored form of one history entry.
type moveRecordJSON struct {
	Board  string `json:"board"`
	Player string `json:"player"`
}

// EncodeBoard - flattens the board row by row from the top, one '0', '1' or '2' per cell.
func EncodeBoard(board entity.Board) string {
	out := make([]byte, 0, boardLength)
	for row := 0; row < entity.Rows; row++ {
		for col := 0; col < entity.Columns; col++ {
			out = append(out, byte('0'+board[row][col]))
		}
	}

	return string(out)
}

// DecodeBoard - parses the EncodeBoard form. It checks shape and alphabet only; gravity is checked on restore.
func DecodeBoard(s string) (entity.Board, error) {
	var board entity.Board

	if len(s) != boardLength {
		return board, fmt.Errorf("%w: board has %d cells, want %d", ErrMalformedState, len(s), boardLength)
	}

	for i := 0; i < boardLength; i++ {
		cell := entity.Cell(s[i] - '0')
		if s[i] < '0' || cell > entity.CellB {
			return board, fmt.Errorf("%w: unexpected board symbol %q at %d", ErrMalformedState, s[i], i)
		}
		board[i/entity.Columns][i%entity.Columns] = cell
	}

	return board, nil
}

func EncodePlayer(player entity.Player) string {
	return player.String()
}

func DecodePlayer(s string) (entity.Player, error) {
	player, err := entity.ParsePlayer(s)
	if err != nil {
		return entity.NoPlayer, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}

	return player, nil
}

// EncodeHistory - stores records oldest first as a JSON array.
func EncodeHistory(records []entity.MoveRecord) (string, error) {
	stored := make([]moveRecordJSON, 0, len(records))
	for _, record := range records {
		stored = append(stored, moveRecordJSON{
			Board:  EncodeBoard(record.Board),
			Player: EncodePlayer(record.Player),
		})
	}

	historyJSON, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("failed to marshal history: %w", err)
	}

	return string(historyJSON), nil
}

func DecodeHistory(s string) ([]entity.MoveRecord, error) {
	var stored []moveRecordJSON
	if err := json.Unmarshal([]byte(s), &stored); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal history: %w", ErrMalformedState, err)
	}

	records := make([]entity.MoveRecord, 0, len(stored))
	for i, item := range stored {
		board, err := DecodeBoard(item.Board)
		if err != nil {
			return nil, fmt.Errorf("history entry %d: %w", i, err)
		}

		player, err := DecodePlayer(item.Player)
		if err != nil {
			return nil, fmt.Errorf("history entry %d: %w", i, err)
		}

		records = append(records, entity.MoveRecord{Board: board, Player: player})
	}

	return records, nil
}
