package response

import "github.com/rocketscienceinc/connectfour-backend/internal/entity"

// Game is the JSON view of a game shared by the transports.
type Game struct {
	Board         [entity.Rows][entity.Columns]string `json:"board"`
	CurrentPlayer string                              `json:"current_player"`
	Winner        string                              `json:"winner"`
	Status        string                              `json:"status"`
	HistoryDepth  int                                 `json:"history_depth"`
	Draw          bool                                `json:"draw"`
}

func NewGame(game *entity.Game) *Game {
	resp := &Game{
		CurrentPlayer: game.Turn.String(),
		Winner:        game.Winner.String(),
		Status:        game.Status(),
		HistoryDepth:  game.History.Len(),
		Draw:          game.IsDraw(),
	}

	for row := range game.Board {
		for col, cell := range game.Board[row] {
			resp.Board[row][col] = cell.Player().String()
		}
	}

	return resp
}
