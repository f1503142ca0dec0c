package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is a change notification pushed to a room's subscribers. Type names
// the table that changed ("room", "players", "game_state", "messages");
// clients re-query through the filtered read endpoints, so the feed itself
// never carries role-restricted content.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client is a single subscriber connection; the SSE handler drains it.
type Client chan []byte

// Hub fans change notifications out to every client watching a room.
type Hub struct {
	rooms map[uint]map[Client]bool
	mu    sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a new client to a specific room's feed.
func (h *Hub) Subscribe(roomID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[Client]bool)
	}
	h.rooms[roomID][client] = true
}

// Unsubscribe removes a client from a room's feed.
func (h *Hub) Unsubscribe(roomID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[roomID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

// Broadcast sends an event to all clients subscribed to a room.
func (h *Hub) Broadcast(roomID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("hub: failed to marshal event for room %d: %v", roomID, err)
		return
	}

	for client := range clients {
		// Non-blocking send so a slow client cannot stall the hub; a skipped
		// notification is recovered by the client's next full refresh.
		select {
		case client <- messageBytes:
		default:
		}
	}
}
