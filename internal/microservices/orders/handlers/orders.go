package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/orders/service"
)

const idempotencyHeader = "Idempotency-Key"

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

type addItemsRequest struct {
	Items []domain.NewItem `json:"items"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) GetOpenOrder(c *gin.Context) {
	tableID, ok := httpx.ParamID(c, "tableId")
	if !ok {
		return
	}
	order, err := h.service.GetOpenOrder(c.Request.Context(), tableID)
	if err != nil {
		httpx.Fail(c, h.lg, "get_open_order_failed", err)
		return
	}
	// null when the table has no open order
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) AddItems(c *gin.Context) {
	tableID, ok := httpx.ParamID(c, "tableId")
	if !ok {
		return
	}
	var req addItemsRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	key := strings.TrimSpace(c.GetHeader(idempotencyHeader))
	order, err := h.service.AddItems(c.Request.Context(), tableID, auth.CallerFrom(c).Actor(), key, req.Items)
	if err != nil {
		httpx.Fail(c, h.lg, "add_items_failed", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateItemStatus(c *gin.Context) {
	itemID, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !httpx.BindJSON(c, &req) {
		return
	}
	item, err := h.service.UpdateItemStatus(c.Request.Context(), itemID, auth.CallerFrom(c).Actor(), req.Status)
	if err != nil {
		httpx.Fail(c, h.lg, "update_item_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *OrderHandler) Timeline(c *gin.Context) {
	itemID, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	changes, err := h.service.Timeline(c.Request.Context(), itemID)
	if err != nil {
		httpx.Fail(c, h.lg, "timeline_failed", err)
		return
	}
	c.JSON(http.StatusOK, changes)
}
