package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/transport/response"
)

type gameUseCase interface {
	State(ctx context.Context) *entity.Game

	Play(ctx context.Context, column int) (*entity.Game, error)
	Undo(ctx context.Context) *entity.Game
	Reset(ctx context.Context) *entity.Game
}

type Handlers interface {
	GetGame(w http.ResponseWriter, r *http.Request)
	Play(w http.ResponseWriter, r *http.Request)
	Undo(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type playRequest struct {
	Column *int `json:"column"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func NewHandlers(logger *slog.Logger, game gameUseCase) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		game:   game,
	}
}

// NewRouter - routes ping and the game endpoints.
func NewRouter(ping PingHandler, h Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", ping.PingHandler)
	mux.HandleFunc("GET /game", h.GetGame)
	mux.HandleFunc("POST /game/play", h.Play)
	mux.HandleFunc("POST /game/undo", h.Undo)
	mux.HandleFunc("POST /game/reset", h.Reset)

	return mux
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, response.NewGame(that.game.State(r.Context())))
}

func (that *handlers) Play(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Play")

	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Column == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "column is required"})
		return
	}

	game, err := that.game.Play(r.Context(), *req.Column)
	if errors.Is(err, apperror.ErrInvalidColumn) {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to play", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, http.StatusOK, response.NewGame(game))
}

func (that *handlers) Undo(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, response.NewGame(that.game.Undo(r.Context())))
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	that.writeJSON(w, http.StatusOK, response.NewGame(that.game.Reset(r.Context())))
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
