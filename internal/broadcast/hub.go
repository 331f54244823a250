package broadcast

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Broadcaster fans entity-mutation events out to connected panels. Handlers
// call Emit after a successful store write; delivery is fire-and-forget.
type Broadcaster interface {
	Emit(event string, payload interface{})
}

// Event names carried on the wire. Each event's payload is the mutated
// entity, unversioned.
const (
	EventOrderCreated       = "order-created"
	EventOrderStatusChanged = "order-status-changed"
	EventMenuItemAdded      = "menu-item-added"
	EventMenuItemUpdated    = "menu-item-updated"
	EventCategoryAdded      = "category-added"
	EventPaymentApproved    = "payment-approved"
	EventReservationCreated = "reservation-created"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the live socket registry. Every connected client receives every
// event; a client whose write fails is dropped and must reconnect. The
// registry is in-memory only, so a restart disconnects everyone.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	log.Printf("Websocket client connected (%d online)", h.ClientCount())
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	log.Printf("Websocket client disconnected (%d online)", h.ClientCount())
}

// Emit writes the event to every registered client. There is no
// acknowledgment and no replay; clients that connect later must re-fetch
// state over HTTP. Writes are serialized under the hub lock so concurrent
// handler goroutines cannot interleave frames on one connection.
func (h *Hub) Emit(event string, payload interface{}) {
	msg := Message{Event: event, Data: payload}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("Dropping websocket client after write error: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
