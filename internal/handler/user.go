package handler

import (
	"errors"

	"github.com/Sivalije58/NexTalk/internal/model"
	"github.com/Sivalije58/NexTalk/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Login gets or creates the user for the given username.
// POST /api/v1/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	u, err := h.users.Login(c.Context(), req.Username)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(u)
}

// List returns all registered users.
// GET /api/v1/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(users)
}

// Check reports whether a username is registered.
// GET /api/v1/users/:username
func (h *UserHandler) Check(c *fiber.Ctx) error {
	u, err := h.users.Get(c.Context(), c.Params("username"))
	if errors.Is(err, model.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"exists": false})
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"exists": true, "user": u})
}

// Delete removes a user. Their messages stay (soft reference, no cascade).
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	u, err := h.users.Delete(c.Context(), c.Params("username"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(u)
}
