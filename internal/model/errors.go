package model

import "errors"

var (
	ErrOutOfBounds      = errors.New("square off the board")
	ErrNoPiece          = errors.New("no piece at from square")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrGameFull         = errors.New("game is full")
	ErrNotInGame        = errors.New("player not in game")
	ErrAlreadyConnected = errors.New("connection already exists")
	ErrAlreadyQueued    = errors.New("player already in queue")
	ErrBadState         = errors.New("invalid game state")
)
