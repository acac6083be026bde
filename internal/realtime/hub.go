package realtime

import (
	"log"
	"sync"
)

// Conn is one subscriber connection. Send is drained by the transport's
// write pump; the hub never blocks on it.
type Conn struct {
	ID    string
	Send  chan []byte
	rooms map[string]struct{}
}

func NewConn(id string, buffer int) *Conn {
	return &Conn{
		ID:    id,
		Send:  make(chan []byte, buffer),
		rooms: make(map[string]struct{}),
	}
}

// Hub is the connection registry. It is created once, injected where
// needed, and owns the register/deregister lifecycle of every connection.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*Conn)}
}

func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID] = c
}

func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c.ID]; !ok {
		return
	}
	delete(h.conns, c.ID)
	close(c.Send)
}

func (h *Hub) Join(c *Conn, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.rooms[room] = struct{}{}
}

func (h *Hub) Leave(c *Conn, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(c.rooms, room)
}

// Broadcast delivers payload once to every connection subscribed to at
// least one of the rooms. Delivery is best-effort: a connection with a full
// send buffer is skipped.
func (h *Hub) Broadcast(rooms []string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.conns {
		if !inAnyRoom(c, rooms) {
			continue
		}
		select {
		case c.Send <- payload:
		default:
			log.Printf("realtime: dropping message for slow connection %s", c.ID)
		}
	}
}

// ConnCount is exposed for tests and health reporting.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func inAnyRoom(c *Conn, rooms []string) bool {
	for _, room := range rooms {
		if _, ok := c.rooms[room]; ok {
			return true
		}
	}
	return false
}
