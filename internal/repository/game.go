package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrCorruptState = errors.New("stored game is corrupt")
)

const keyPrefix = "connectfour:"

// KeyValueStore is the opaque string store behind the game repository.
// Get returns apperror.ErrNotFound for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type GameRepository interface {
	Load(ctx context.Context) (*entity.Game, error)
	Save(ctx context.Context, game *entity.Game) error
}

type dbGame struct {
	store KeyValueStore

	boardKey   string
	playerKey  string
	historyKey string
}

// NewGameRepository - stores one game under three keys namespaced by gameID.
func NewGameRepository(store KeyValueStore, gameID string) GameRepository {
	prefix := keyPrefix + gameID + ":"

	return &dbGame{
		store:      store,
		boardKey:   prefix + "board-state",
		playerKey:  prefix + "current-player",
		historyKey: prefix + "move-history",
	}
}

func (that *dbGame) Save(ctx context.Context, game *entity.Game) error {
	historyJSON, err := EncodeHistory(game.History.Records())
	if err != nil {
		return fmt.Errorf("could not encode history: %w", err)
	}

	if err = that.store.Set(ctx, that.boardKey, EncodeBoard(game.Board)); err != nil {
		return fmt.Errorf("failed to set board: %w", err)
	}

	if err = that.store.Set(ctx, that.playerKey, EncodePlayer(game.Turn)); err != nil {
		return fmt.Errorf("failed to set current player: %w", err)
	}

	if err = that.store.Set(ctx, that.historyKey, historyJSON); err != nil {
		return fmt.Errorf("failed to set history: %w", err)
	}

	return nil
}

// Load - returns ErrGameNotFound when nothing was saved and ErrCorruptState when
// the stored blobs do not describe a reachable game.
func (that *dbGame) Load(ctx context.Context) (*entity.Game, error) {
	boardValue, err := that.get(ctx, that.boardKey)
	if err != nil {
		return nil, err
	}

	playerValue, err := that.get(ctx, that.playerKey)
	if err != nil {
		return nil, err
	}

	historyValue, err := that.get(ctx, that.historyKey)
	if err != nil {
		return nil, err
	}

	board, err := DecodeBoard(boardValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	turn, err := DecodePlayer(playerValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	records, err := DecodeHistory(historyValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	game, err := entity.RestoreGame(board, turn, records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	return game, nil
}

func (that *dbGame) get(ctx context.Context, key string) (string, error) {
	value, err := that.store.Get(ctx, key)
	if errors.Is(err, apperror.ErrNotFound) {
		return "", fmt.Errorf("%w: missing %s", ErrGameNotFound, key)
	}

	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}
