package catalog

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/microservices/catalog/handlers"
)

func Mount(r gin.IRoutes, h *handlers.Handler) {
	r.GET("/products", h.ProductHandler.List)
}
