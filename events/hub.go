// Package events pushes order updates to connected dashboards over websockets.
package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/urbantrove-ng/Urbantrove-Api/models"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is one message on the wire.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Publisher is what order flows need from the hub.
type Publisher interface {
	Publish(eventType string, data interface{})
}

// Event types.
const (
	OrderCreated   = "order.created"
	OrderCompleted = "order.completed"
)

// OrderSummary is all an order event carries. Buyer, address and line
// details stay behind the authenticated order endpoints.
type OrderSummary struct {
	ID      uint               `json:"id"`
	OrderNo string             `json:"orderNo"`
	Status  models.OrderStatus `json:"status"`
}

func SummarizeOrder(order models.Order) OrderSummary {
	return OrderSummary{ID: order.ID, OrderNo: order.OrderNo, Status: order.Status}
}

// Hub fans events out to every connected websocket client.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Handler upgrades the request and keeps the connection registered until it closes.
func (h *Hub) Handler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.add(conn)
	defer h.remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Publish broadcasts an event; clients that cannot be written to are dropped.
func (h *Hub) Publish(eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("❌ Failed to encode %s event: %v", eventType, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Clients reports how many connections are registered.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}
