package websocket

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

func newTestServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gameRepo := repository.NewGameRepository(storage.NewMemoryStorage(), "test")
	gameUseCase := usecase.NewGameUseCase(context.Background(), logger, gameRepo)

	server := httptest.NewServer(New(logger, gameUseCase))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	return ws
}

func send(t *testing.T, ws *websocket.Conn, raw string) Response {
	t.Helper()

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(raw)))

	return receive(t, ws)
}

func receive(t *testing.T, ws *websocket.Conn) Response {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	var resp Response
	require.NoError(t, ws.ReadJSON(&resp))

	return resp
}

func TestServer(t *testing.T) {
	t.Run("Replies with the current state", func(t *testing.T) {
		ws := dial(t, newTestServer(t))

		resp := send(t, ws, `{"action": "game:state"}`)

		assert.Equal(t, actionGameState, resp.Action)
		assert.Empty(t, resp.Payload.Error)
		require.NotNil(t, resp.Payload.Game)
		assert.Equal(t, "A", resp.Payload.Game.CurrentPlayer)
		assert.Equal(t, "in_progress", resp.Payload.Game.Status)
	})

	t.Run("Plays a move", func(t *testing.T) {
		ws := dial(t, newTestServer(t))

		resp := send(t, ws, `{"action": "game:play", "payload": {"column": 6}}`)

		assert.Equal(t, actionGamePlay, resp.Action)
		require.NotNil(t, resp.Payload.Game)
		assert.Equal(t, "A", resp.Payload.Game.Board[5][6])
		assert.Equal(t, "B", resp.Payload.Game.CurrentPlayer)
		assert.Equal(t, 1, resp.Payload.Game.HistoryDepth)
	})

	t.Run("Undoes and resets", func(t *testing.T) {
		ws := dial(t, newTestServer(t))
		send(t, ws, `{"action": "game:play", "payload": {"column": 1}}`)
		send(t, ws, `{"action": "game:play", "payload": {"column": 2}}`)

		resp := send(t, ws, `{"action": "game:undo"}`)
		require.NotNil(t, resp.Payload.Game)
		assert.Equal(t, 1, resp.Payload.Game.HistoryDepth)
		assert.Equal(t, "", resp.Payload.Game.Board[5][2])

		resp = send(t, ws, `{"action": "game:reset"}`)
		require.NotNil(t, resp.Payload.Game)
		assert.Equal(t, 0, resp.Payload.Game.HistoryDepth)
		assert.Equal(t, "", resp.Payload.Game.Board[5][1])
	})

	t.Run("Reports an invalid column", func(t *testing.T) {
		ws := dial(t, newTestServer(t))

		resp := send(t, ws, `{"action": "game:play", "payload": {"column": -1}}`)

		assert.Equal(t, actionGamePlay, resp.Action)
		assert.Nil(t, resp.Payload.Game)
		assert.Contains(t, resp.Payload.Error, "invalid column")
	})

	t.Run("Reports a missing column", func(t *testing.T) {
		ws := dial(t, newTestServer(t))

		resp := send(t, ws, `{"action": "game:play", "payload": {}}`)

		assert.Equal(t, "column is required", resp.Payload.Error)
	})

	t.Run("Reports an unknown action and keeps the connection", func(t *testing.T) {
		ws := dial(t, newTestServer(t))

		resp := send(t, ws, `{"action": "game:leave"}`)
		assert.Equal(t, "unknown action", resp.Payload.Error)

		resp = send(t, ws, `not json`)
		assert.Equal(t, "malformed message", resp.Payload.Error)

		resp = send(t, ws, `{"action": "game:state"}`)
		assert.NotNil(t, resp.Payload.Game)
	})

	t.Run("Broadcasts moves to every connection", func(t *testing.T) {
		// Given: two clients on the same game
		url := newTestServer(t)
		first := dial(t, url)
		second := dial(t, url)

		// the state round trip guarantees the second client is registered
		send(t, second, `{"action": "game:state"}`)

		// When: the first client plays
		resp := send(t, first, `{"action": "game:play", "payload": {"column": 3}}`)

		// Then: the second client sees the same state
		update := receive(t, second)
		assert.Equal(t, actionGamePlay, update.Action)
		assert.Equal(t, resp.Payload.Game, update.Payload.Game)
	})
}
