// Package ws pushes notification payloads to connected clients over
// websockets, keyed by user id. Delivery is best-effort: a dead connection is
// dropped, never retried.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"ridecarry/pkg/logger"
)

type Hub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]struct{}
	log   logger.ILogger
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// browsers hit this cross-origin from the SPA; auth happens via the
	// bearer token, not the Origin header
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		conns: map[string]map[*websocket.Conn]struct{}{},
		log:   log,
	}
}

// Serve upgrades the request and parks the connection until the peer closes.
func (h *Hub) Serve(userID string, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warning("websocket upgrade failed", logger.Error(err))
		return
	}

	h.add(userID, conn)
	defer h.remove(userID, conn)

	// inbound frames are ignored; the read loop only notices the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Push sends v as JSON to every live connection of the user.
func (h *Hub) Push(userID string, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		h.log.Error("failed to marshal ws payload", logger.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
			_ = conn.Close()
			delete(h.conns[userID], conn)
		}
	}
}

func (h *Hub) add(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = map[*websocket.Conn]struct{}{}
	}
	h.conns[userID][conn] = struct{}{}
}

func (h *Hub) remove(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], conn)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
	_ = conn.Close()
}
