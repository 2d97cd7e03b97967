package api

import (
	"net/http"
	"sync"

	"bravoo/pkg/auth"
	"bravoo/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// wsClient wraps one connection with a write mutex; gorilla allows a
// single concurrent writer per connection.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub tracks open websocket connections per user and pushes progress
// events (quest completions, star awards) to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*wsClient]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*wsClient]struct{}),
	}
}

func (h *Hub) add(userID string, conn *websocket.Conn) *wsClient {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := &wsClient{conn: conn}
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*wsClient]struct{})
	}
	h.clients[userID][client] = struct{}{}

	return client
}

func (h *Hub) remove(userID string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// Notify sends the event to every open connection of the user. Send
// failures only close the broken connection; delivery is best effort.
func (h *Hub) Notify(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Logger().Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.send(payload); err != nil {
			logger.Logger().Info("dropping websocket connection",
				zap.String("user_id", userID), zap.Error(err))
			h.remove(userID, client)
			client.conn.Close()
		}
	}
}

type notificationRoutes struct {
	hub *Hub
	a   *auth.TokenAuth
}

func NewNotificationRoutes(handler *gin.RouterGroup, hub *Hub, a *auth.TokenAuth) {
	r := &notificationRoutes{hub: hub, a: a}
	h := handler.Group("/ws")
	h.Use(a.Middleware())
	{
		h.GET("", r.Subscribe)
	}
}

func (r *notificationRoutes) Subscribe(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		log.Error("authenticated user not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	client := r.hub.add(user.ID, conn)

	// Reads are discarded; the read loop only detects the close.
	go func() {
		defer func() {
			r.hub.remove(user.ID, client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
