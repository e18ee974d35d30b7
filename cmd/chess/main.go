package main

import (
	"os"

	"github.com/benbeisheim/chess-backend/internal/session"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	if err := session.New(os.Stdin, os.Stdout).Run(); err != nil {
		log.Fatal(err)
	}
}
