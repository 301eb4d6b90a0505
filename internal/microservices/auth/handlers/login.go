package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/auth/service"
)

type LoginHandler struct {
	service service.LoginServiceInterface
	lg      *logger.Logger
}

func NewLoginHandler(s service.LoginServiceInterface, lg *logger.Logger) *LoginHandler {
	return &LoginHandler{service: s, lg: lg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Fail(c, h.lg, "login_failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
