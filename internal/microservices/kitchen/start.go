package kitchen

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/microservices/kitchen/handlers"
)

func Mount(r gin.IRoutes, h *handlers.Handler) {
	r.GET("/kitchen/queue", h.QueueHandler.List)
}
