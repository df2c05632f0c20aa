package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
	"github.com/rocketscienceinc/connectfour-backend/transport/rest"
	"github.com/rocketscienceinc/connectfour-backend/transport/websocket"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type store interface {
	repository.KeyValueStore
	Close() error
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	kvStore, err := openStorage(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not open %s storage: %w", conf.Storage.Driver, err)
	}

	defer func() {
		if err = kvStore.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	log.Info("Storage opened", "driver", conf.Storage.Driver, "gameID", conf.GameID)

	gameRepo := repository.NewGameRepository(kvStore, conf.GameID)
	gameUseCase := usecase.NewGameUseCase(ctx, logger, gameRepo)

	mux := rest.NewRouter(rest.NewPingHandler(), rest.NewHandlers(logger, gameUseCase))
	mux.Handle("GET /ws", websocket.New(logger, gameUseCase))

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, mux); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// openStorage - opens the key-value store selected by storage.driver.
func openStorage(ctx context.Context, conf *config.Config) (store, error) {
	switch conf.Storage.Driver {
	case config.DriverMemory:
		return storage.NewMemoryStorage(), nil

	case config.DriverRedis:
		return storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())

	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, err
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, err
		}

		return sqliteStorage, nil

	case config.DriverPostgres:
		postgresStorage, err := storage.NewPostgresStorage(ctx, conf.Postgres.DSN)
		if err != nil {
			return nil, err
		}

		if err = postgresStorage.Init(ctx); err != nil {
			_ = postgresStorage.Close()
			return nil, err
		}

		return postgresStorage, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, conf.Storage.Driver)
}
