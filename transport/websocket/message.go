package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/connectfour-backend/transport/response"
)

const (
	actionGameState = "game:state"
	actionGamePlay  = "game:play"
	actionGameUndo  = "game:undo"
	actionGameReset = "game:reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type PlayPayload struct {
	Column *int `json:"column"`
}

type ResponsePayload struct {
	Game  *response.Game `json:"game,omitempty"`
	Error string         `json:"error,omitempty"`
}

type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}
