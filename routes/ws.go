package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Event is a catalog mutation pushed to connected websocket clients.
type Event struct {
	Type string `json:"type"`
	Slug string `json:"slug,omitempty"`
	ID   uint   `json:"id,omitempty"`
}

// Hub broadcasts catalog events to all connected clients.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte // buffered to keep publishers from blocking
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 100),
	}
}

// Run drains the broadcast channel and fans messages out to every client.
func (hub *Hub) Run() {
	for message := range hub.broadcast {
		hub.mu.Lock()
		for client := range hub.clients {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(hub.clients, client)
			}
		}
		hub.mu.Unlock()
	}
}

// Publish queues an event for broadcast; it never blocks the caller.
func (hub *Hub) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode event: %v", err)
		return
	}
	select {
	case hub.broadcast <- payload:
	default:
		log.Println("Event feed full, dropping event:", event.Type)
	}
}

func (h *Handler) serveWS() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		h.Hub.mu.Lock()
		h.Hub.clients[conn] = true
		h.Hub.mu.Unlock()
		log.Println("Client connected:", conn.RemoteAddr())

		// Clients only listen; reads just detect disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				h.Hub.mu.Lock()
				delete(h.Hub.clients, conn)
				h.Hub.mu.Unlock()
				log.Println("Client disconnected:", conn.RemoteAddr())
				return
			}
		}
	})
}
