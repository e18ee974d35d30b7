package controller

import (
	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		log.Errorf("create game: %v", err)
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), c.Params("square"))
	if err != nil {
		return errorResponse(c, err)
	}
	if moves == nil {
		moves = []chess.Square{}
	}
	return c.JSON(fiber.Map{
		"legalMoves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.Move
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	gameID := c.Params("gameId")
	if err := gc.gameService.HandleMove(gameID, middleware.PlayerID(c), move); err != nil {
		return errorResponse(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(middleware.PlayerID(c)); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// MatchmakingStatus lets a player queued over REST find the game they were
// put in.
func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	event, matched, queued := gc.gameService.MatchStatus(middleware.PlayerID(c))
	switch {
	case matched:
		return c.JSON(fiber.Map{
			"status": "matched",
			"gameId": event.GameID,
			"color":  event.Color,
		})
	case queued:
		return c.JSON(fiber.Map{"status": "queued"})
	default:
		return c.JSON(fiber.Map{"status": "idle"})
	}
}
