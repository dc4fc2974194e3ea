package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/platformbuilds/studygraph/internal/metrics"
	"github.com/platformbuilds/studygraph/internal/services"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)

// Hub fans study change events out to connected explorers. It implements
// services.Notifier.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	upgrader   websocket.Upgrader
	maxClients int
	pingEvery  time.Duration
	logger     logger.Logger
	mu         sync.RWMutex
}

type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

type Message struct {
	Type      string               `json:"type"`
	Data      services.ChangeEvent `json:"data"`
	Timestamp time.Time            `json:"timestamp"`
}

type HubConfig struct {
	MaxConnections  int
	ReadBufferSize  int
	WriteBufferSize int
	PingInterval    time.Duration
}

func NewHub(cfg HubConfig, logger logger.Logger) *Hub {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// Origins are enforced by the CORS middleware.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		maxClients: cfg.MaxConnections,
		pingEvery:  cfg.PingInterval,
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			metrics.WebsocketClients.Set(float64(n))
			h.logger.Info("WebSocket client connected", "clientId", client.id, "clients", n)

		case client := <-h.unregister:
			h.mu.Lock()
			h.drop(client)
			n := len(h.clients)
			h.mu.Unlock()
			metrics.WebsocketClients.Set(float64(n))
			h.logger.Info("WebSocket client disconnected", "clientId", client.id)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Too slow to keep up; it can reconnect and refetch.
					h.drop(client)
				}
			}
			n := len(h.clients)
			h.mu.Unlock()
			metrics.WebsocketClients.Set(float64(n))

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.drop(client)
			}
			h.mu.Unlock()
			metrics.WebsocketClients.Set(0)
			return
		}
	}
}

// Publish queues ev for every client without blocking the caller.
func (h *Hub) Publish(ev services.ChangeEvent) {
	raw, err := json.Marshal(Message{Type: ev.Type, Data: ev, Timestamp: time.Now()})
	if err != nil {
		h.logger.Error("Failed to marshal change event", "type", ev.Type, "error", err)
		return
	}
	select {
	case h.broadcast <- raw:
	default:
		h.logger.Warn("Change event dropped, broadcast queue full", "type", ev.Type, "version", ev.Version)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades GET /ws/studies.
func (h *Hub) ServeWS(c *gin.Context) {
	if h.maxClients > 0 && h.ClientCount() >= h.maxClients {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many websocket clients"})
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	client := &Client{id: uuid.NewString(), hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// drop removes client; callers hold mu.
func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// readPump discards client input and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * c.hub.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * c.hub.pingEvery))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.hub.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
