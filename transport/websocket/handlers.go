package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/transport/response"
)

func (that *Server) handleState(ctx context.Context, msg *Message, c *conn) error {
	return that.sendGame(c, msg.Action, that.gameUseCase.State(ctx))
}

func (that *Server) handlePlay(ctx context.Context, msg *Message, c *conn) error {
	log := that.logger.With("method", "handlePlay")

	var payloadReq PlayPayload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil || payloadReq.Column == nil {
		log.Warn("column is missing in payload")
		return that.sendError(c, msg.Action, "column is required")
	}

	game, err := that.gameUseCase.Play(ctx, *payloadReq.Column)
	if errors.Is(err, apperror.ErrInvalidColumn) {
		return that.sendError(c, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to play", "error", err)
		return that.sendError(c, msg.Action, "failed to play")
	}

	that.broadcast(msg.Action, game)

	return nil
}

func (that *Server) handleUndo(ctx context.Context, msg *Message, _ *conn) error {
	that.broadcast(msg.Action, that.gameUseCase.Undo(ctx))

	return nil
}

func (that *Server) handleReset(ctx context.Context, msg *Message, _ *conn) error {
	that.broadcast(msg.Action, that.gameUseCase.Reset(ctx))

	return nil
}

// broadcast - sends the game to every open connection, they all share it.
func (that *Server) broadcast(action string, game *entity.Game) {
	log := that.logger.With("method", "broadcast")

	that.connectionsMutex.RLock()
	conns := make([]*conn, 0, len(that.connections))
	for c := range that.connections {
		conns = append(conns, c)
	}
	that.connectionsMutex.RUnlock()

	for _, c := range conns {
		if err := that.sendGame(c, action, game); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}
}

func (that *Server) sendGame(c *conn, action string, game *entity.Game) error {
	resp := Response{
		Action:  action,
		Payload: ResponsePayload{Game: response.NewGame(game)},
	}

	if err := c.writeJSON(resp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) sendError(c *conn, action, message string) error {
	resp := Response{
		Action:  action,
		Payload: ResponsePayload{Error: message},
	}

	if err := c.writeJSON(resp); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
