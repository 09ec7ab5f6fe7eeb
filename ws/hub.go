// Package ws is the best-effort broadcast channel: newly created
// messages are pushed to every connected client after the store write.
// Delivery is at-most-once; a failed push never affects stored data.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST layer already handles CORS; the socket accepts the same
	// origins implicitly.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	send   chan []byte
	closed bool
}

type Hub struct {
	logger  zerolog.Logger
	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
	}
}

// Handle upgrades the request and serves the connection until it
// closes.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	cl := &client{conn: conn, send: make(chan []byte, 16)}

	h.mu.Lock()
	h.clients[id] = cl
	h.mu.Unlock()
	h.logger.Debug().Str("client", id).Msg("websocket connected")

	cl.enqueue(mustJSON(gin.H{
		"type":    "connection_established",
		"message": "Connected to messaging server",
	}))

	go cl.writeLoop()
	h.readLoop(id, cl)
}

func (h *Hub) readLoop(id string, cl *client) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, id)
		h.mu.Unlock()
		cl.close()
		h.logger.Debug().Str("client", id).Msg("websocket closed")
	}()

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}
		// Echo back to confirm receipt.
		cl.enqueue(mustJSON(gin.H{
			"type": "message_received",
			"data": string(data),
		}))
	}
}

func (cl *client) writeLoop() {
	for data := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// enqueue drops the frame when the client's buffer is full or the
// connection is gone.
func (cl *client) enqueue(data []byte) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return
	}
	select {
	case cl.send <- data:
	default:
	}
}

func (cl *client) close() {
	cl.mu.Lock()
	if !cl.closed {
		cl.closed = true
		close(cl.send)
	}
	cl.mu.Unlock()
	cl.conn.Close()
}

// Broadcast fans payload out to every connected client. Errors are
// swallowed: the channel has no delivery guarantee.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, err := json.Marshal(gin.H{"type": eventType, "message": payload})
	if err != nil {
		h.logger.Error().Err(err).Msg("broadcast marshal failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, cl := range h.clients {
		cl.enqueue(data)
	}
}

// ClientCount reports the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func mustJSON(v interface{}) []byte {
	data, _ := json.Marshal(v)
	return data
}
