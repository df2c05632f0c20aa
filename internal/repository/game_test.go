package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// played - returns the state of a session after the given columns.
func played(t *testing.T, columns ...int) *entity.Game {
	t.Helper()

	session := connectfour.NewSession(nil)
	for _, col := range columns {
		_, err := session.Play(col)
		require.NoError(t, err)
	}

	return session.Snapshot()
}

func TestGameRepository_RoundTrip(t *testing.T) {
	cases := map[string][]int{
		"new game":      nil,
		"game underway": {3, 3, 4, 2, 5},
		"won game":      {0, 1, 0, 1, 0, 1, 0},
		"diagonal win":  {0, 1, 1, 2, 2, 3, 2, 3, 6, 3, 3},
		"full column":   {2, 2, 2, 2, 2, 2},
	}

	for name, columns := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			gameRepo := NewGameRepository(storage.NewMemoryStorage(), "123")

			// Given: a reachable game state
			game := played(t, columns...)

			// When: it is saved and loaded
			require.NoError(t, gameRepo.Save(ctx, game))
			loaded, err := gameRepo.Load(ctx)

			// Then: the loaded state is identical, winner included
			require.NoError(t, err)
			assert.Equal(t, game, loaded)
		})
	}
}

func TestGameRepository_Load(t *testing.T) {
	t.Run("Nothing saved returns ErrGameNotFound", func(t *testing.T) {
		gameRepo := NewGameRepository(storage.NewMemoryStorage(), "123")

		_, err := gameRepo.Load(context.Background())

		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Partially saved game returns ErrGameNotFound", func(t *testing.T) {
		ctx := context.Background()
		store := storage.NewMemoryStorage()
		require.NoError(t, store.Set(ctx, "connectfour:123:board-state", EncodeBoard(entity.EmptyBoard())))

		_, err := NewGameRepository(store, "123").Load(ctx)

		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Corrupt board returns ErrCorruptState", func(t *testing.T) {
		// Given: a saved game whose board blob was damaged
		ctx := context.Background()
		store := storage.NewMemoryStorage()
		gameRepo := NewGameRepository(store, "123")
		require.NoError(t, gameRepo.Save(ctx, played(t, 1, 2)))
		require.NoError(t, store.Set(ctx, "connectfour:123:board-state", "garbage"))

		// When: it is loaded
		_, err := gameRepo.Load(ctx)

		// Then: the corruption is reported
		require.ErrorIs(t, err, ErrCorruptState)
	})

	t.Run("History out of sync with the board returns ErrCorruptState", func(t *testing.T) {
		ctx := context.Background()
		store := storage.NewMemoryStorage()
		gameRepo := NewGameRepository(store, "123")
		require.NoError(t, gameRepo.Save(ctx, played(t, 1, 2)))
		require.NoError(t, store.Set(ctx, "connectfour:123:move-history", "[]"))

		_, err := gameRepo.Load(ctx)

		require.ErrorIs(t, err, ErrCorruptState)
		require.ErrorIs(t, err, entity.ErrInconsistentHistory)
	})

	t.Run("Games are namespaced by id", func(t *testing.T) {
		ctx := context.Background()
		store := storage.NewMemoryStorage()
		require.NoError(t, NewGameRepository(store, "first").Save(ctx, played(t, 0)))

		_, err := NewGameRepository(store, "second").Load(ctx)

		require.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestGameRepository_Redis(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(storage.NewRedisStorageFromClient(st.Storage), "123")

	// Given: a won game
	game := played(t, 0, 1, 0, 1, 0, 1, 0)

	// When: it is saved to redis and read back
	err := gameRepo.Save(ctx, game)
	require.NoError(t, err)

	loaded, err := gameRepo.Load(ctx)

	// Then: the state matches
	require.NoError(t, err)
	require.Equal(t, game, loaded)
	assert.Equal(t, entity.PlayerA, loaded.Winner)
}
