package handler

import (
	"errors"
	"log"

	"github.com/Sivalije58/NexTalk/internal/model"

	"github.com/gofiber/fiber/v2"
)

// fail maps the service error taxonomy onto HTTP status codes. Anything
// outside the taxonomy is logged and reported as a plain 500.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, model.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
