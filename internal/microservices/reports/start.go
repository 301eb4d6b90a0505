package reports

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/reports/handlers"
)

func Mount(r gin.IRoutes, h *handlers.Handler) {
	admin := auth.RequireRole(domain.RoleAdmin)
	r.GET("/orders/history", admin, h.ReportsHandler.History)
	r.GET("/stats/dashboard", admin, h.ReportsHandler.Dashboard)
}
