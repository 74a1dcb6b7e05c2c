package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// ImportEvent is pushed to every connected dashboard client when an upload
// finishes processing.
type ImportEvent struct {
	BatchID    string    `json:"batch_id"`
	Filename   string    `json:"filename"`
	FillCount  int       `json:"fill_count"`
	TradeCount int       `json:"trade_count"`
	At         time.Time `json:"at"`
}

// client pairs a connection with the mutex serializing its writes;
// gorilla/websocket supports at most one concurrent writer per connection.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Hub fans import events out to connected websocket clients. Clients that
// fail a write are dropped; the dashboard reconnects on its own.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]*client
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and keeps the connection registered until the
// client goes away. Clients never send anything meaningful; the read loop
// only exists to notice the close.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = &client{conn: conn}
	clients := len(h.clients)
	h.mu.Unlock()

	logger.WithField("clients", clients).Debug("Websocket client connected")

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends the event to every connected client. Safe to call from
// concurrent uploads: each client's writes are serialized by its own mutex.
func (h *Hub) Broadcast(event ImportEvent) {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		c.writeMu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := c.conn.WriteJSON(event)
		c.writeMu.Unlock()

		if err != nil {
			logger.WithError(err).Debug("Dropping websocket client after failed write")
			h.drop(c.conn)
		}
	}
}

// ClientCount reports how many dashboard clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}
