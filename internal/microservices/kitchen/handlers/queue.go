package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/kitchen/service"
)

type QueueHandler struct {
	service service.QueueServiceInterface
	lg      *logger.Logger
}

func NewQueueHandler(s service.QueueServiceInterface, lg *logger.Logger) *QueueHandler {
	return &QueueHandler{service: s, lg: lg}
}

func (h *QueueHandler) List(c *gin.Context) {
	items, err := h.service.ListQueue(c.Request.Context())
	if err != nil {
		httpx.Fail(c, h.lg, "list_kitchen_queue_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}
