package controllers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/pkg/utils"
)

type missionEvent struct {
	userID  uuid.UUID
	event   string
	payload interface{}
}

var missionEventChan = make(chan *missionEvent, 100)

// notifyMissionEvent queues an event for a user without blocking the
// request handler. Events for offline users are dropped by the notifier.
func notifyMissionEvent(userID uuid.UUID, event string, payload interface{}) {
	select {
	case missionEventChan <- &missionEvent{userID: userID, event: event, payload: payload}:
	default:
		log.Printf("dispatcher: event queue full, dropping %s for %s", event, userID.String())
	}
}

// StartMissionDispatcher drains the event queue into the websocket notifier.
func StartMissionDispatcher() {
	go func() {
		for ev := range missionEventChan {
			utils.DefaultNotifier.NotifyUser(ev.userID, ev.event, ev.payload)
		}
	}()
}

// WsHandler authenticates a websocket connection by its token query param
// and keeps it registered until it closes.
func WsHandler(c *websocket.Conn) {
	token := c.Query("token")
	if token == "" {
		c.Close()
		return
	}

	userID, err := utils.ExtractUserIDFromHeader("Bearer " + token)
	if err != nil {
		c.Close()
		return
	}

	utils.DefaultNotifier.Register(userID, c)
	defer func() {
		utils.DefaultNotifier.Unregister(userID, c)
		c.Close()
	}()

	// Inbound messages are ignored; the socket exists for server pushes.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
