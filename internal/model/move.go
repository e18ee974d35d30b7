package model

import "github.com/benbeisheim/chess-backend/internal/chess"

// Move is a request to move whatever stands on From to To. Squares travel
// as algebraic strings ("e2").
type Move struct {
	From chess.Square `json:"from"`
	To   chess.Square `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + " " + m.To.String()
}
