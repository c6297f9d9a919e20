// Package hub provides a thread-safe websocket broadcast hub for the
// event feed, using the channel-based fan-out pattern.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/visagekit/visage/internal/log"
	"github.com/visagekit/visage/pkg/facestate"
)

// EventFrame is the wire format for one dispatched event.
type EventFrame struct {
	Event string `json:"event"`
	Time  string `json:"time"`
}

// Hub maintains the set of connected clients and broadcasts event
// frames to them. Slow clients are dropped rather than allowed to
// stall the feed.
type Hub struct {
	name string

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// New creates a hub. Call Run in a goroutine before broadcasting.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("feed client connected", "hub", h.name, "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("feed client disconnected", "hub", h.name, "remaining", count)

		case payload := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Client buffer full; drop the client, not the feed.
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow feed client", "hub", h.name)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastEvent encodes the event as an EventFrame and broadcasts it.
func (h *Hub) BroadcastEvent(e facestate.Event) {
	frame := EventFrame{
		Event: e.Name(),
		Time:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	h.Broadcast(payload)
}

// Broadcast sends a raw payload to all connected clients.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	default:
		log.Warn("broadcast channel full, dropping event", "hub", h.name)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
