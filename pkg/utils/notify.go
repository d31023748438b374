package utils

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Notifier tracks active websocket connections per user and pushes mission
// and moderation events to them. A user may hold several connections (one
// per open tab).
type Notifier struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]map[*websocket.Conn]bool
}

// DefaultNotifier is the package-level notifier instance.
var DefaultNotifier = NewNotifier()

func NewNotifier() *Notifier {
	return &Notifier{
		conns: make(map[uuid.UUID]map[*websocket.Conn]bool),
	}
}

func (n *Notifier) Register(userID uuid.UUID, conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.conns[userID]; !ok {
		n.conns[userID] = make(map[*websocket.Conn]bool)
	}
	n.conns[userID][conn] = true
	log.Printf("event=ws_register user=%s", userID.String())
}

func (n *Notifier) Unregister(userID uuid.UUID, conn *websocket.Conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if conns, ok := n.conns[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(n.conns, userID)
		}
	}
}

// NotifyUser sends an event payload to every open connection of a user.
// Users without a connection are silently skipped.
func (n *Notifier) NotifyUser(userID uuid.UUID, event string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		log.Printf("notifier: marshal error: %v", err)
		return
	}

	n.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(n.conns[userID]))
	for c := range n.conns[userID] {
		conns = append(conns, c)
	}
	n.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("notifier: write to %s failed: %v", userID.String(), err)
		}
	}
}
