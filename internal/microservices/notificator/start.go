package notificator

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/microservices/notificator/handlers"
)

func Mount(r gin.IRoutes, h *handlers.Handler) {
	r.GET("/events", h.EventsHandler.Stream)
}
