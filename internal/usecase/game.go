package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
)

type GameUseCase interface {
	State(ctx context.Context) *entity.Game

	Play(ctx context.Context, column int) (*entity.Game, error)
	Undo(ctx context.Context) *entity.Game
	Reset(ctx context.Context) *entity.Game
}

type gameRepoDep interface {
	Load(ctx context.Context) (*entity.Game, error)
	Save(ctx context.Context, game *entity.Game) error
}

// gameUseCase hosts one session. The mutex confines it, since transports call in from many goroutines.
type gameUseCase struct {
	logger   *slog.Logger
	gameRepo gameRepoDep

	mu      sync.Mutex
	session *connectfour.Session
}

// NewGameUseCase - restores the saved game, or starts a fresh one when nothing
// usable is stored. Load failures are logged and never returned.
func NewGameUseCase(ctx context.Context, logger *slog.Logger, gameRepo gameRepoDep) GameUseCase {
	that := &gameUseCase{
		logger:   logger.With("component", "game"),
		gameRepo: gameRepo,
	}

	that.session = connectfour.NewSession(that.restore(ctx))

	return that
}

func (that *gameUseCase) State(_ context.Context) *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.Snapshot()
}

func (that *gameUseCase) Play(ctx context.Context, column int) (*entity.Game, error) {
	log := that.logger.With("method", "Play", "column", column)

	that.mu.Lock()
	defer that.mu.Unlock()

	changed, err := that.session.Play(column)
	if err != nil {
		return nil, fmt.Errorf("failed to play: %w", err)
	}

	game := that.session.Snapshot()
	if !changed {
		log.Debug("move ignored", "status", game.Status())
		return game, nil
	}

	last, _ := game.History.Peek()
	log.Info("move played", "player", last.Player.String(), "status", game.Status())
	that.save(ctx, game)

	return game, nil
}

func (that *gameUseCase) Undo(ctx context.Context) *entity.Game {
	log := that.logger.With("method", "Undo")

	that.mu.Lock()
	defer that.mu.Unlock()

	changed := that.session.Undo()

	game := that.session.Snapshot()
	if !changed {
		log.Debug("undo ignored", "history_depth", game.History.Len(), "status", game.Status())
		return game
	}

	log.Info("move undone", "history_depth", game.History.Len())
	that.save(ctx, game)

	return game
}

func (that *gameUseCase) Reset(ctx context.Context) *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.session.Reset()

	game := that.session.Snapshot()
	that.logger.Info("game reset", "method", "Reset")
	that.save(ctx, game)

	return game
}

// save - persists the final state. Failures are logged only.
func (that *gameUseCase) save(ctx context.Context, game *entity.Game) {
	if err := that.gameRepo.Save(ctx, game); err != nil {
		that.logger.Error("failed to save game", "method", "save", "error", err)
	}
}

func (that *gameUseCase) restore(ctx context.Context) *entity.Game {
	log := that.logger.With("method", "restore")

	game, err := that.gameRepo.Load(ctx)
	if errors.Is(err, repository.ErrGameNotFound) {
		log.Info("no saved game, starting a new one")
		return entity.NewGame()
	}

	if err != nil {
		log.Warn("could not restore saved game, starting a new one", "error", err)
		return entity.NewGame()
	}

	log.Info("saved game restored", "history_depth", game.History.Len(), "status", game.Status())

	return game
}
