// Package wsapi streams each simulation step to connected debug clients
// over a github.com/gorilla/websocket connection, following the teacher
// repository's hub/client pattern: a register/unregister channel pair
// owned by a single goroutine, and a per-client buffered send channel
// drained by its own writePump so one slow client never stalls delivery
// to the others.
package wsapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"halfearth/internal/broadcast"
	"halfearth/internal/logger"
	"halfearth/internal/state"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const clientSendBuffer = 32

// client is a single connected debug client.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	connID string
}

// Hub streams state.Update values, published onto bus, to every
// connected debug client as JSON.
type Hub struct {
	bus *broadcast.Bus[state.Update]

	register   chan *client
	unregister chan *client
}

// NewHub returns a Hub that will forward every update published on bus.
func NewHub(bus *broadcast.Bus[state.Update]) *Hub {
	return &Hub{
		bus:        bus,
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run is the hub's event loop; it owns every client's registration and
// must run on its own goroutine for the Hub's lifetime.
func (h *Hub) Run() {
	updates, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	clients := map[*client]bool{}
	for {
		select {
		case c := <-h.register:
			clients[c] = true
			logger.WithConnContext(c.connID).Info("wsapi: client connected", zap.Int("clients", len(clients)))

		case c := <-h.unregister:
			if clients[c] {
				delete(clients, c)
				close(c.send)
				logger.WithConnContext(c.connID).Info("wsapi: client disconnected", zap.Int("clients", len(clients)))
			}

		case update, ok := <-updates:
			if !ok {
				return
			}
			data, err := json.Marshal(update)
			if err != nil {
				logger.Get().Error("wsapi: marshal update", zap.Error(err))
				continue
			}
			for c := range clients {
				select {
				case c.send <- data:
				default:
					close(c.send)
					delete(clients, c)
				}
			}
		}
	}
}

// ServeWS upgrades r into a WebSocket connection and registers it with
// the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Get().Warn("wsapi: upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientSendBuffer), connID: r.RemoteAddr}
	h.register <- c

	go h.writePump(c)
	go h.readPump(c)
}

// readPump only watches for the client closing the connection; debug
// clients are not expected to send commands over this socket.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
