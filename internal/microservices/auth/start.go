package auth

import (
	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/microservices/auth/handlers"
)

// Mount registers the public routes; they must sit outside the token check.
func Mount(r gin.IRoutes, h *handlers.Handler) {
	r.POST("/login", h.LoginHandler.Login)
}
