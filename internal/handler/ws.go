package handler

import (
	"encoding/json"
	"log"
	"time"

	"github.com/Sivalije58/NexTalk/internal/model"
	"github.com/Sivalije58/NexTalk/internal/service"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const readDeadline = 60 * time.Second

type WSHandler struct {
	hub *service.Hub
}

func NewWSHandler(hub *service.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		// Optional, for logging only: sessions are anonymous, delivery is
		// broadcast-to-all.
		c.Locals("username", c.Query("username"))
		return websocket.New(h.handleConnection)(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *WSHandler) handleConnection(c *websocket.Conn) {
	username, _ := c.Locals("username").(string)

	client := service.NewClient(c, username)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	// Writer pump: drains the client's send buffer onto the connection and
	// exits when the client is closed or the write fails.
	go func() {
		defer c.Close()
		for msg := range client.Messages() {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	// Reader loop. Inbound frames are keepalives only; mutations go through
	// the REST endpoints.
	c.SetReadDeadline(time.Now().Add(readDeadline))
	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			break
		}

		// Reset deadline on any message
		c.SetReadDeadline(time.Now().Add(readDeadline))

		var event model.Event
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		switch event.Type {
		case "ping":
			pong, _ := json.Marshal(model.Event{Type: model.EventPong})
			client.Push(pong)
		default:
			log.Printf("WS: unknown event type %q from %q", event.Type, username)
		}
	}
}
