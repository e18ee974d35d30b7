package model

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Game owns one board, whose turn it is and who is seated. It is the only
// place a board is mutated.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *chess.Board
	toMove      chess.Color
	players     Players
	lastMove    *Move
	connections *GameConnections
}

// GameState is the client view of a game and also its persisted form.
type GameState struct {
	ID       string       `json:"id"`
	Board    *chess.Board `json:"board"`
	ToMove   chess.Color  `json:"toMove"`
	Players  Players      `json:"players"`
	LastMove *Move        `json:"lastMove"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		board:       chess.StartingBoard(),
		toMove:      chess.White,
		players:     newPlayers(),
		connections: NewGameConnections(),
	}
}

// RestoreGame rebuilds a game from a previously taken State. Connections are
// not part of the state and start empty.
func RestoreGame(state GameState) (*Game, error) {
	if state.Board == nil {
		return nil, fmt.Errorf("%w: game %s has no board", ErrBadState, state.ID)
	}
	if state.ToMove != chess.White && state.ToMove != chess.Black {
		return nil, fmt.Errorf("%w: game %s has %v to move", ErrBadState, state.ID, state.ToMove)
	}
	if state.Players.White.Color != chess.White || state.Players.Black.Color != chess.Black {
		return nil, fmt.Errorf("%w: game %s has players in the wrong seats", ErrBadState, state.ID)
	}
	board := *state.Board
	return &Game{
		ID:          state.ID,
		board:       &board,
		toMove:      state.ToMove,
		players:     state.Players,
		lastMove:    state.LastMove,
		connections: NewGameConnections(),
	}, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// AddPlayer seats the player, White first. A player who is already seated
// gets their color back.
func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.colorOf(playerID); ok {
		return color, nil
	}
	for _, color := range []chess.Color{chess.White, chess.Black} {
		seat := g.players.seat(color)
		if seat.ID == "" {
			*seat = ClientPlayer{ID: playerID, Color: color}
			log.Debugf("game %s: %s seated as %v", g.ID, playerID, color)
			return color, nil
		}
	}
	return chess.White, ErrGameFull
}

func (g *Game) ColorOf(playerID string) (chess.Color, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.colorOf(playerID)
}

func (g *Game) colorOf(playerID string) (chess.Color, bool) {
	if playerID == "" {
		return chess.White, false
	}
	if g.players.White.ID == playerID {
		return chess.White, true
	}
	if g.players.Black.ID == playerID {
		return chess.Black, true
	}
	return chess.White, false
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() GameState {
	board := *g.board
	var last *Move
	if g.lastMove != nil {
		m := *g.lastMove
		last = &m
	}
	return GameState{
		ID:       g.ID,
		Board:    &board,
		ToMove:   g.toMove,
		Players:  g.players,
		LastMove: last,
	}
}

// Save hands the current state to save while the game is locked, so snapshots
// of one game are written in the order the game changed.
func (g *Game) Save(save func(GameState) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return save(g.state())
}

func (g *Game) ToMove() chess.Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toMove
}

// Board returns a copy of the current board.
func (g *Game) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	board := *g.board
	return &board
}

// Apply validates move for the side to move and, if legal, plays it and
// passes the turn.
func (g *Game) Apply(move Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apply(move)
}

// MakeMove is Apply on behalf of a seated player. Connected clients have
// received the new state by the time it returns.
func (g *Game) MakeMove(playerID string, move Move) error {
	g.mu.Lock()
	color, ok := g.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrNotInGame
	}
	if color != g.toMove {
		g.mu.Unlock()
		return ErrNotYourTurn
	}
	if err := g.apply(move); err != nil {
		g.mu.Unlock()
		return err
	}
	g.mu.Unlock()

	g.broadcastState()
	return nil
}

func (g *Game) apply(move Move) error {
	if !move.From.OnBoard() || !move.To.OnBoard() {
		return ErrOutOfBounds
	}
	piece, ok := g.board.At(move.From)
	if !ok {
		return ErrNoPiece
	}
	if piece.Color != g.toMove {
		return ErrNotYourTurn
	}
	if !chess.IsLegal(piece, move.From, move.To, g.board) {
		return fmt.Errorf("%w: %v %s", ErrIllegalMove, piece.Kind, move)
	}

	g.board.Relocate(move.From, move.To)
	g.lastMove = &move
	g.toMove = g.toMove.Opponent()
	return nil
}

// Destinations lists the legal targets of the piece on from, whoever's turn
// it is.
func (g *Game) Destinations(from chess.Square) ([]chess.Square, error) {
	if !from.OnBoard() {
		return nil, ErrOutOfBounds
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	piece, ok := g.board.At(from)
	if !ok {
		return nil, ErrNoPiece
	}
	return chess.Destinations(piece, from, g.board), nil
}

// RegisterConnection attaches a seated player's connection and sends them
// the current state. A second connection for the same player is closed.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	if _, seated := g.ColorOf(playerID); !seated {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.Close()
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection for %s", g.ID, playerID)

	g.broadcastState()
	return nil
}

// UnregisterConnection forgets conn if it is still the player's current one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Infof("game %s: unregistered connection for %s", g.ID, playerID)
	}
}

// broadcastState writes the current state to every connection. Connections
// that fail are dropped. The state is read under the connections mutex, so
// the last write any client sees is never older than the last move.
func (g *Game) broadcastState() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.State())
	if err != nil {
		log.Errorf("game %s: encode state: %v", g.ID, err)
		return
	}
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
