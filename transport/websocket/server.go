package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type gameUseCase interface {
	State(ctx context.Context) *entity.Game

	Play(ctx context.Context, column int) (*entity.Game, error)
	Undo(ctx context.Context) *entity.Game
	Reset(ctx context.Context) *entity.Game
}

// conn pairs a socket with its write lock, gorilla allows one concurrent writer.
type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func (that *conn) writeJSON(v any) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))

	return that.ws.WriteJSON(v)
}

func (that *conn) ping() error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	return that.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	connectionsMutex sync.RWMutex
	connections      map[*conn]struct{}

	handlers map[string]func(ctx context.Context, message *Message, c *conn) error
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		connections: make(map[*conn]struct{}),
		handlers:    make(map[string]func(context.Context, *Message, *conn) error),
	}

	server.handlers[actionGameState] = server.handleState
	server.handlers[actionGamePlay] = server.handlePlay
	server.handlers[actionGameUndo] = server.handleUndo
	server.handlers[actionGameReset] = server.handleReset

	return server
}

// ServeHTTP - upgrades the request and serves the connection until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &conn{ws: ws}

	that.connectionsMutex.Lock()
	that.connections[c] = struct{}{}
	that.connectionsMutex.Unlock()

	defer func() {
		that.connectionsMutex.Lock()
		delete(that.connections, c)
		that.connectionsMutex.Unlock()

		_ = ws.Close()
	}()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go that.keepAlive(ctx, c)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *conn) error {
	log := that.logger.With("method", "handleMessages")

	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := c.ws.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendError(c, "", "malformed message"); err != nil {
					return err
				}
				continue
			}

			return err
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendError(c, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) keepAlive(ctx context.Context, c *conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
