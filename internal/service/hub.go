package service

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Sivalije58/NexTalk/internal/model"

	"github.com/gofiber/contrib/websocket"
)

// Client is one open push session. The websocket handler drains Messages()
// into the connection; the hub only ever hands it serialized events.
type Client struct {
	Conn     *websocket.Conn
	Username string

	send   chan []byte
	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, username string) *Client {
	return &Client{
		Conn:     conn,
		Username: username,
		send:     make(chan []byte, 256),
	}
}

// Messages returns the channel the connection's writer pump drains. It is
// closed exactly once, when the client leaves the Connected state.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

// Push hands data to the client without blocking. Returns false when the
// client is closed or its buffer is full; the caller treats that as a dead
// session.
func (c *Client) Push(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close transitions the client to Closed. Safe to call more than once and
// concurrently with Push.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Hub tracks connected sessions and fans each event out to all of them.
// Delivery is best-effort, at-most-once: a session whose push fails is
// closed and pruned during the broadcast pass, and its failure is never
// surfaced to the mutation that produced the event.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("WS: session connected (total: %d)", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("WS: session disconnected (total: %d)", total)

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.Push(data) {
					client.Close()
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			return
		}
	}
}

func (h *Hub) Shutdown() {
	close(h.done)
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast serializes the event and queues it for fan-out to every open
// session. It never returns an error: per-session failures are handled by
// pruning, not by the caller.
func (h *Hub) Broadcast(event *model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("WS: marshal event %s: %v", event.Type, err)
		return
	}
	h.broadcast <- data
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
