package orders

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/microservices/orders/handlers"
)

func Mount(r gin.IRoutes, h *handlers.Handler) {
	r.GET("/orders/table/:tableId", h.OrderHandler.GetOpenOrder)
	r.POST("/orders/table/:tableId", h.OrderHandler.AddItems)
	r.POST("/orders/lineitem/:id/status", h.OrderHandler.UpdateItemStatus)
	r.GET("/orders/lineitem/:id/timeline", h.OrderHandler.Timeline)
}
