package shift

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/shift/handlers"
)

func Mount(r gin.IRoutes, h *handlers.Handler) {
	admin := auth.RequireRole(domain.RoleAdmin)
	r.GET("/shift", admin, h.ShiftHandler.Current)
	r.POST("/shift/open", admin, h.ShiftHandler.Open)
	r.POST("/shift/close", admin, h.ShiftHandler.Close)
}
