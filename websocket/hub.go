package websocket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types pushed to clients
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeFollow  = "follow"
)

// sendBuffer bounds the per-client queue; a client that falls this far
// behind starts losing notifications.
const sendBuffer = 32

// Notification represents a message sent over WebSocket
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	UserID  string      `json:"userId,omitempty"`
}

// Client represents a connected WebSocket client. All writes to the
// connection go through the send channel and a single writer goroutine;
// gorilla connections do not permit concurrent writers.
type Client struct {
	UserID primitive.ObjectID
	Conn   *websocket.Conn
	send   chan Notification
}

func newClient(userID primitive.ObjectID, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		send:   make(chan Notification, sendBuffer),
	}
}

// writePump is the connection's only writer. It drains the send channel
// until the hub closes it on unregister.
func (c *Client) writePump() {
	defer c.Conn.Close()
	for notification := range c.send {
		if err := c.Conn.WriteJSON(notification); err != nil {
			log.Printf("websocket write to %s failed: %v", c.UserID.Hex(), err)
			return
		}
	}
}

// Hub maintains the set of active clients keyed by user id
type Hub struct {
	clients    map[primitive.ObjectID]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop. The send channel is closed under the
// write lock, so SendToUser can never hit a closed channel.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = client
			h.mu.Unlock()
			go client.writePump()
		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.UserID]; ok && current == client {
				delete(h.clients, client.UserID)
			}
			close(client.send)
			h.mu.Unlock()
		}
	}
}

// SendToUser queues a notification for the user's open connection, if any.
// Offline users simply miss the event, and a full queue drops it; delivery
// is best effort.
func (h *Hub) SendToUser(userID primitive.ObjectID, notification Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[userID]
	if !ok {
		return
	}

	select {
	case client.send <- notification:
	default:
		log.Printf("dropping notification for %s: send queue full", userID.Hex())
	}
}

// NotifyLike tells a content owner someone liked their post or video
func (h *Hub) NotifyLike(ownerID primitive.ObjectID, data interface{}) {
	h.SendToUser(ownerID, Notification{
		Type:    NotificationTypeLike,
		Message: "Someone liked your post",
		Data:    data,
	})
}

// NotifyComment tells a content owner about a new comment
func (h *Hub) NotifyComment(ownerID primitive.ObjectID, data interface{}) {
	h.SendToUser(ownerID, Notification{
		Type:    NotificationTypeComment,
		Message: "New comment on your post",
		Data:    data,
	})
}

// NotifyFollow tells a user they gained a follower
func (h *Hub) NotifyFollow(userID primitive.ObjectID, data interface{}) {
	h.SendToUser(userID, Notification{
		Type:    NotificationTypeFollow,
		Message: "You have a new follower",
		Data:    data,
	})
}
