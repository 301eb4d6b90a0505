package service

import (
	"encoding/json"
	"sync"
	"time"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/metrics"
	"restaurant-pos/internal/domain"
)

// Message is the wire form of a notification, both on the bus and on the
// SSE stream. Room "" means every session.
type Message struct {
	ID    string          `json:"id"`
	Event string          `json:"event"`
	Room  string          `json:"room,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	At    time.Time       `json:"at"`
}

// Client is one connected session.
type Client struct {
	StaffID int64
	Role    domain.Role
	room    string
	send    chan Message
}

func (c *Client) Messages() <-chan Message { return c.send }

// Hub fans messages out to sessions in this process.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
	buffer  int
	lg      *logger.Logger
}

func NewHub(buffer int, lg *logger.Logger) *Hub {
	if buffer <= 0 {
		buffer = 32
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
		buffer:  buffer,
		lg:      lg,
	}
}

// Join registers a session and puts it in its staff room.
func (h *Hub) Join(staffID int64, role domain.Role) *Client {
	c := &Client{StaffID: staffID, Role: role, room: domain.StaffRoom(staffID), send: make(chan Message, h.buffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.rooms[c.room] == nil {
		h.rooms[c.room] = make(map[*Client]struct{})
	}
	h.rooms[c.room][c] = struct{}{}
	h.mu.Unlock()

	metrics.SSEClients.Inc()
	h.lg.Debug("client_joined", map[string]any{"staff_id": staffID, "room": c.room})
	return c
}

func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	if members := h.rooms[c.room]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, c.room)
		}
	}
	close(c.send)
	h.mu.Unlock()

	metrics.SSEClients.Dec()
	h.lg.Debug("client_left", map[string]any{"staff_id": c.StaffID})
}

// CloseAll ends every session. Streams see their channel close and return,
// so a server shutdown does not wait on them.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	n := len(h.clients)
	for c := range h.clients {
		close(c.send)
	}
	h.clients = make(map[*Client]struct{})
	h.rooms = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	metrics.SSEClients.Sub(float64(n))
	h.lg.Info("clients_closed", map[string]any{"count": n})
}

// Deliver never blocks: a session whose buffer is full misses the message.
func (h *Hub) Deliver(m Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := h.clients
	if m.Room != "" {
		targets = h.rooms[m.Room]
	}
	for c := range targets {
		select {
		case c.send <- m:
		default:
			metrics.NotificationsPublished.WithLabelValues(m.Event, "dropped").Inc()
			h.lg.Debug("client_slow_message_dropped", map[string]any{"staff_id": c.StaffID, "event": m.Event})
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
