package tables

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/microservices/tables/handlers"
)

func Mount(r gin.IRoutes, h *handlers.Handler) {
	r.GET("/tables", h.TableHandler.List)
	r.GET("/tables/mine", h.TableHandler.ListMine)
	r.POST("/tables/:id/claim", h.TableHandler.Claim)
	r.POST("/tables/:id/release", h.TableHandler.Release)
}
