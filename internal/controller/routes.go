package controller

import (
	"strings"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

type AppConfig struct {
	AllowOrigins string
	AccessLog    bool
}

// NewApp builds the fiber app with every REST and WebSocket route mounted.
func NewApp(cfg AppConfig, gameService *service.GameService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "chess-backend",
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: cfg.AllowOrigins != "" && cfg.AllowOrigins != "*",
	}))

	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         strings.Split(cfg.AllowOrigins, ","),
	}

	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)

	// WebSocket routes
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Get("/matchmaking/status", gameController.MatchmakingStatus)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", gameController.LegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)

	return app
}
