// websocket/hub.go
package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeApplicationStatus MessageType = "APPLICATION_STATUS"
	MessageTypeSubscribe         MessageType = "SUBSCRIBE"
	MessageTypeUnsubscribe       MessageType = "UNSUBSCRIBE"
	MessageTypeError             MessageType = "ERROR"
)

type WebSocketMessage struct {
	Type              MessageType `json:"type"`
	Payload           interface{} `json:"payload"`
	Timestamp         time.Time   `json:"timestamp"`
	ApplicationNumber string      `json:"applicationNumber,omitempty"`
}

type Client struct {
	ID            uuid.UUID
	Email         string
	Conn          *websocket.Conn
	Hub           *Hub
	Send          chan WebSocketMessage
	Subscriptions map[string]bool
	mu            sync.RWMutex
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan WebSocketMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WebSocketMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(message WebSocketMessage) {
	h.broadcast <- message
}

// BroadcastStatusChange notifies every client watching the given application
// number; clients with no subscriptions receive all status events.
func (h *Hub) BroadcastStatusChange(applicationNumber, status string) {
	message := WebSocketMessage{
		Type: MessageTypeApplicationStatus,
		Payload: map[string]interface{}{
			"application_number": applicationNumber,
			"status":             status,
		},
		Timestamp:         time.Now(),
		ApplicationNumber: applicationNumber,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.mu.RLock()
		watching := len(client.Subscriptions) == 0 || client.Subscriptions[applicationNumber]
		client.mu.RUnlock()

		if watching {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
}

func (h *Hub) broadcastToAll(message WebSocketMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Subscribe adds an application number to the client's watch list
func (c *Client) Subscribe(applicationNumber string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Subscriptions == nil {
		c.Subscriptions = make(map[string]bool)
	}
	c.Subscriptions[applicationNumber] = true
}

// Unsubscribe removes an application number from the client's watch list
func (c *Client) Unsubscribe(applicationNumber string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Subscriptions, applicationNumber)
}
