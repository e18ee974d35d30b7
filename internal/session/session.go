// Package session runs a two-player game on a text console: it prints the
// board, reads one move per line and applies it.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
)

const QuitCommand = "quit"

const (
	msgBadInput     = "Invalid input. Use format: e2 e4"
	msgBadPosition  = "Invalid position."
	msgBadSelection = "Invalid piece selection."
	msgBadMove      = "Invalid move."
	msgGameEnded    = "Game ended."
)

type Session struct {
	in      io.Reader
	scanner *bufio.Scanner
	out     io.Writer
	game    *model.Game
}

// New starts a session on a fresh game. The session owns in: if it is an
// io.Closer it is closed when Run returns.
func New(in io.Reader, out io.Writer) *Session {
	return &Session{
		in:      in,
		scanner: bufio.NewScanner(in),
		out:     out,
		game:    model.NewGame("console"),
	}
}

func (s *Session) Game() *model.Game {
	return s.game
}

// Run plays until the quit command or the end of input.
func (s *Session) Run() (err error) {
	defer func() {
		if c, ok := s.in.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}()

	for {
		fmt.Fprint(s.out, s.game.Board())
		if !s.turn() {
			break
		}
	}
	fmt.Fprintln(s.out, msgGameEnded)
	return s.scanner.Err()
}

// turn prompts for and handles one line. It reports whether to keep going.
func (s *Session) turn() bool {
	fmt.Fprintf(s.out, "%v's turn. Enter move (e.g., e2 e4): \n", s.game.ToMove())
	if !s.scanner.Scan() {
		return false
	}
	input := strings.TrimSpace(s.scanner.Text())
	if input == QuitCommand {
		return false
	}

	move, msg := parseMove(input)
	if msg != "" {
		fmt.Fprintln(s.out, msg)
		return true
	}

	err := s.game.Apply(move)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrNoPiece), errors.Is(err, model.ErrNotYourTurn):
		fmt.Fprintln(s.out, msgBadSelection)
	default:
		fmt.Fprintln(s.out, msgBadMove)
	}
	return true
}

// parseMove reads "e2 e4". On failure it returns the message to show.
func parseMove(input string) (model.Move, string) {
	parts := strings.Fields(input)
	if len(parts) != 2 {
		return model.Move{}, msgBadInput
	}
	from, err := chess.ParseSquare(parts[0])
	if err != nil {
		return model.Move{}, msgBadPosition
	}
	to, err := chess.ParseSquare(parts[1])
	if err != nil {
		return model.Move{}, msgBadPosition
	}
	return model.Move{From: from, To: to}, ""
}
