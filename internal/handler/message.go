package handler

import (
	"strconv"

	"github.com/Sivalije58/NexTalk/internal/model"
	"github.com/Sivalije58/NexTalk/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	chat *service.ChatService
}

func NewMessageHandler(chat *service.ChatService) *MessageHandler {
	return &MessageHandler{chat: chat}
}

// List returns every message in chronological order.
// GET /api/v1/messages
func (h *MessageHandler) List(c *fiber.Ctx) error {
	msgs, err := h.chat.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return c.JSON(msgs)
}

// Post stores a new message and broadcasts it.
// POST /api/v1/messages
func (h *MessageHandler) Post(c *fiber.Ctx) error {
	var req model.MessagePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	msg, err := h.chat.Post(c.Context(), req.Username, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// Edit replaces a message's content in place; id and created_at are stable.
// PUT /api/v1/messages/:id
func (h *MessageHandler) Edit(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid message id"})
	}

	var req model.MessageEditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	msg, err := h.chat.Edit(c.Context(), id, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(msg)
}

// Delete removes a single message and returns the deleted row.
// DELETE /api/v1/messages/:id
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid message id"})
	}

	msg, err := h.chat.Delete(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(msg)
}

// Clear empties the message table. Idempotent, always succeeds.
// DELETE /api/v1/messages
func (h *MessageHandler) Clear(c *fiber.Ctx) error {
	if err := h.chat.ClearAll(c.Context()); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"cleared": true})
}
