package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Player identifies one of the two sides. The zero value means "nobody" and is used for an absent winner.
type Player uint8

const (
	NoPlayer Player = iota
	PlayerA
	PlayerB
)

// ParsePlayer - parses the "A"/"B" form produced by String.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "A":
		return PlayerA, nil
	case "B":
		return PlayerB, nil
	default:
		return NoPlayer, fmt.Errorf("%w: %q", ErrUnknownPlayer, s)
	}
}

func (that Player) String() string {
	switch that {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return ""
	}
}

func (that Player) Valid() bool {
	return that == PlayerA || that == PlayerB
}

// Opponent - returns the other side; NoPlayer stays NoPlayer.
func (that Player) Opponent() Player {
	switch that {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return NoPlayer
	}
}

// Cell - returns the cell value occupied by this player's piece.
func (that Player) Cell() Cell {
	switch that {
	case PlayerA:
		return CellA
	case PlayerB:
		return CellB
	default:
		return EmptyCell
	}
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}
