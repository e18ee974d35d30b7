package service

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (chess.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// LegalMoves lists where the piece on square can go. square is algebraic.
func (gs *GameService) LegalMoves(gameID string, square string) ([]chess.Square, error) {
	from, err := chess.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return gs.gameManager.Destinations(gameID, from)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) WaitForMatch(playerID string, ch chan model.MatchFoundEvent) error {
	return gs.gameManager.WaitForMatch(playerID, ch)
}

func (gs *GameService) CancelMatch(playerID string, ch chan model.MatchFoundEvent) {
	gs.gameManager.CancelMatch(playerID, ch)
}

func (gs *GameService) MatchStatus(playerID string) (model.MatchFoundEvent, bool, bool) {
	return gs.gameManager.MatchStatus(playerID)
}
