package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/reports/service"
)

type ReportsHandler struct {
	service service.ReportsServiceInterface
	lg      *logger.Logger
}

func NewReportsHandler(svc service.ReportsServiceInterface, lg *logger.Logger) *ReportsHandler {
	return &ReportsHandler{service: svc, lg: lg}
}

func (h *ReportsHandler) History(c *gin.Context) {
	limit := atoiDefault(c.Query("limit"), service.DefaultHistoryLimit)
	orders, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		httpx.Fail(c, h.lg, "history_failed", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *ReportsHandler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		httpx.Fail(c, h.lg, "dashboard_failed", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// atoiDefault: безопасный парсер int с дефолтом
func atoiDefault(s string, d int) int {
	if s == "" {
		return d
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return n
}
