package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/storage"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	level, _ := cfg.Level()
	log.SetLevel(level)

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize services
	gameManager := service.NewGameManager(store)
	go gameManager.RunMatchmaking(ctx, cfg.MatchInterval)
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(controller.AppConfig{
		AllowOrigins: cfg.AllowOrigins,
		AccessLog:    cfg.AccessLog,
	}, gameService)

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Errorf("listen: %v", err)
	}
}
