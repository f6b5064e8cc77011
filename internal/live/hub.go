package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectator feed is public; the join code is the only gate.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans match updates out to spectators grouped by join code. It is
// broadcast-only: client messages are drained and discarded.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]bool)}
}

// Serve upgrades the request, sends the initial payload if any, and parks
// the connection in the code's room until the peer goes away. It blocks for
// the life of the connection.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, code string, initial interface{}) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	if h.rooms[code] == nil {
		h.rooms[code] = make(map[*websocket.Conn]bool)
	}
	h.rooms[code][conn] = true
	h.mu.Unlock()

	defer h.drop(code, conn)
	if initial != nil {
		data, err := json.Marshal(initial)
		if err != nil {
			log.Printf("live: failed to marshal initial frame for %s: %v", code, err)
		} else if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return nil
		}
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// Broadcast marshals the payload once and pushes it to every spectator in
// the room. Dead connections are dropped as they surface.
func (h *Hub) Broadcast(code string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("live: failed to marshal update for %s: %v", code, err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[code]))
	for conn := range h.rooms[code] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(code, conn)
		}
	}
}

// Spectators reports how many connections a room currently holds.
func (h *Hub) Spectators(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

func (h *Hub) drop(code string, conn *websocket.Conn) {
	h.mu.Lock()
	if room, ok := h.rooms[code]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
	h.mu.Unlock()
	conn.Close()
}
