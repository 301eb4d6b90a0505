package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/billing/service"
)

type BillingHandler struct {
	service service.BillingServiceInterface
	lg      *logger.Logger
}

func NewBillingHandler(s service.BillingServiceInterface, lg *logger.Logger) *BillingHandler {
	return &BillingHandler{service: s, lg: lg}
}

func (h *BillingHandler) Bill(c *gin.Context) {
	tableID, ok := httpx.ParamID(c, "tableId")
	if !ok {
		return
	}
	includeTip := false
	if v := c.Query("tip"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.WriteProblem(c, http.StatusBadRequest, string(domain.KindValidation), "tip must be true or false")
			return
		}
		includeTip = b
	}
	bill, err := h.service.Bill(c.Request.Context(), tableID, includeTip)
	if err != nil {
		httpx.Fail(c, h.lg, "bill_failed", err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillingHandler) Pay(c *gin.Context) {
	tableID, ok := httpx.ParamID(c, "tableId")
	if !ok {
		return
	}
	var req domain.Settlement
	if !httpx.BindJSON(c, &req) {
		return
	}
	if err := h.service.Pay(c.Request.Context(), tableID, auth.CallerFrom(c).Actor(), req); err != nil {
		httpx.Fail(c, h.lg, "pay_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
