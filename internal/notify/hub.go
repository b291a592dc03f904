package notify

import (
	"context"
	"encoding/json"
	"sync"

	"marketplace-admin/internal/logger"

	"go.uber.org/zap"
)

// Hub fans notifications out to the websocket clients of a room. A room is
// one operator session.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	done       chan struct{}

	mu sync.RWMutex
}

type roomMessage struct {
	room    string
	payload []byte
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run is the hub loop; it returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for room, clients := range h.rooms {
				for c := range clients {
					close(c.send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.room] == nil {
				h.rooms[c.room] = make(map[*Client]bool)
			}
			h.rooms[c.room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[msg.room] {
				select {
				case c.send <- msg.payload:
				default:
					// slow consumer
					h.remove(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(c *Client) {
	clients, ok := h.rooms[c.room]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
}

// Clients reports how many clients are connected to room.
func (h *Hub) Clients(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Room returns a Notifier delivering to one room.
func (h *Hub) Room(room string) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notification) {
		payload, err := json.Marshal(n)
		if err != nil {
			logger.FromCtx(ctx).Error("failed to encode notification", zap.Error(err))
			return
		}
		select {
		case h.broadcast <- roomMessage{room: room, payload: payload}:
		default:
			logger.FromCtx(ctx).Warn("notification dropped, hub backlog full", zap.String("room", room))
		}
	})
}
