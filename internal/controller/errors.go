package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrGameFull), errors.Is(err, model.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, chess.ErrBadSquare), errors.Is(err, model.ErrOutOfBounds), errors.Is(err, model.ErrNoPiece):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove), errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}
