package billing

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/microservices/billing/handlers"
)

func Mount(r gin.IRoutes, h *handlers.Handler) {
	r.GET("/orders/table/:tableId/bill", h.BillingHandler.Bill)
	r.POST("/orders/table/:tableId/pay", h.BillingHandler.Pay)
}
