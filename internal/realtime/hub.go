// Package realtime pushes events to a user's open websocket connections.
package realtime

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/synergysphere/synergysphere/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

const (
	EventConnected    = "connected"
	EventNotification = "notification"
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub tracks websocket clients per user. It is delivery state only and is
// never consulted for authorization.
type Hub struct {
	mu       sync.RWMutex
	clients  map[uint]map[*client]struct{}
	upgrader websocket.Upgrader
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

func NewHub(allowedOrigins []string, log zerolog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[uint]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		log:     log,
		metrics: m,
	}
}

// Publish queues event for every connection of userID. A client whose
// buffer is full misses the event; it can always catch up by polling.
func (h *Hub) Publish(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.send <- event:
		default:
			h.log.Warn().Uint("user_id", userID).Str("type", event.Type).Msg("realtime buffer full, dropping event")
		}
	}
}

// Connections returns the number of open connections for userID.
func (h *Hub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Serve upgrades the request and blocks until the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uint) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan Event, sendBuffer)}
	h.register(userID, c)
	c.send <- Event{Type: EventConnected}

	go h.writePump(userID, c)
	h.readPump(userID, c)

	return nil
}

func (h *Hub) register(userID uint, c *client) {
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.RealtimeConnections.Inc()
	}
	h.log.Debug().Uint("user_id", userID).Msg("websocket connected")
}

func (h *Hub) unregister(userID uint, c *client) {
	h.mu.Lock()
	clients, ok := h.clients[userID]
	if ok {
		if _, ok = clients[c]; ok {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
	h.mu.Unlock()

	if ok && h.metrics != nil {
		h.metrics.RealtimeConnections.Dec()
	}
	h.log.Debug().Uint("user_id", userID).Msg("websocket closed")
}

func (h *Hub) readPump(userID uint, c *client) {
	defer func() {
		h.unregister(userID, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.log.Warn().Err(err).Msg("failed to set initial read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Clients only send pongs and close frames; anything else is ignored.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Uint("user_id", userID).Msg("websocket read error")
			}
			return
		}
	}
}

func (h *Hub) writePump(userID uint, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				h.log.Warn().Err(err).Uint("user_id", userID).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
