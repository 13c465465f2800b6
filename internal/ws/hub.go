// Package ws holds the in-memory chat rooms for owner-renter messaging.
// One room exists per relationship while either side is connected.
package ws

import (
	"encoding/json"
	"sync"
)

// Client is one WebSocket connection with user context.
type Client struct {
	UserID string
	Role   string
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// trySend queues the payload unless the client is closed or its buffer is
// full. It holds the same lock Close takes, so a concurrent disconnect cannot
// close the channel mid-send.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// Room is the chat room of a single relationship.
type Room struct {
	RelationshipID string

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewRoom(relationshipID string) *Room {
	return &Room{
		RelationshipID: relationshipID,
		clients:        make(map[*Client]struct{}),
	}
}

func (r *Room) Join(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c] = struct{}{}
}

func (r *Room) Leave(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, c)
}

func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast sends the payload to every client in the room except the sender.
// Slow clients are skipped rather than blocked on.
func (r *Room) Broadcast(from *Client, payload interface{}) {
	data, _ := json.Marshal(payload)

	r.mu.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for c := range r.clients {
		if c != from {
			clients = append(clients, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range clients {
		c.trySend(data)
	}
}

// Hub holds all active rooms keyed by relationship ID.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*Room)}
}

func (h *Hub) GetOrCreateRoom(relationshipID string) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[relationshipID]; ok {
		return r
	}
	r := NewRoom(relationshipID)
	h.rooms[relationshipID] = r
	return r
}

func (h *Hub) GetRoom(relationshipID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[relationshipID]
}

// RemoveRoomIfEmpty drops the room once the last client leaves.
func (h *Hub) RemoveRoomIfEmpty(relationshipID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[relationshipID]; ok && r.ClientCount() == 0 {
		delete(h.rooms, relationshipID)
	}
}
