package serverutils

import (
	"errors"

	"store-assistant-be/internal/constant"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping a handler into a JSON
// envelope. Dialogue faults never reach here in the happy path (the
// orchestrator has its own catch boundary); this covers malformed requests
// and wiring mistakes.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, constant.ErrValidation):
			status = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, constant.ErrOrderNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		}

		return ctx.Status(status).JSON(fiber.Map{"message": message})
	}
}
