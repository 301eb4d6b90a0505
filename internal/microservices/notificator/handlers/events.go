package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/notificator/service"
)

type EventsHandler struct {
	hub       *service.Hub
	heartbeat time.Duration
}

func NewEventsHandler(hub *service.Hub, heartbeat time.Duration) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &EventsHandler{hub: hub, heartbeat: heartbeat}
}

// Stream is the realtime channel. Opening it is the identification
// handshake: the session joins its staff room and gets a "joined" event.
func (h *EventsHandler) Stream(c *gin.Context) {
	caller := auth.CallerFrom(c)
	client := h.hub.Join(caller.ID, caller.Role)
	defer h.hub.Leave(client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("joined", gin.H{"room": domain.StaffRoom(caller.ID), "role": caller.Role})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-client.Messages():
			if !ok {
				return
			}
			c.SSEvent(m.Event, m.Data)
		case <-ticker.C:
			// комментарий держит соединение через прокси
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				return
			}
		}
		c.Writer.Flush()
	}
}
