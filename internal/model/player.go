package model

import "github.com/benbeisheim/chess-backend/internal/chess"

// Conn is the write side of a client connection. *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type ClientPlayer struct {
	ID    string      `json:"id"`
	Color chess.Color `json:"color"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func newPlayers() Players {
	return Players{
		White: ClientPlayer{Color: chess.White},
		Black: ClientPlayer{Color: chess.Black},
	}
}

func (p *Players) seat(color chess.Color) *ClientPlayer {
	if color == chess.White {
		return &p.White
	}
	return &p.Black
}
