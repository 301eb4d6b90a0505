package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/shift/service"
)

type ShiftHandler struct {
	service service.ShiftServiceInterface
	lg      *logger.Logger
}

func NewShiftHandler(s service.ShiftServiceInterface, lg *logger.Logger) *ShiftHandler {
	return &ShiftHandler{service: s, lg: lg}
}

type shiftResponse struct {
	Open  bool          `json:"open"`
	Shift *domain.Shift `json:"shift"`
}

func (h *ShiftHandler) Current(c *gin.Context) {
	sh, err := h.service.Current(c.Request.Context())
	if err != nil {
		httpx.Fail(c, h.lg, "current_shift_failed", err)
		return
	}
	c.JSON(http.StatusOK, shiftResponse{Open: sh != nil, Shift: sh})
}

func (h *ShiftHandler) Open(c *gin.Context) {
	sh, err := h.service.Open(c.Request.Context(), auth.CallerFrom(c).Actor())
	if err != nil {
		httpx.Fail(c, h.lg, "open_shift_failed", err)
		return
	}
	c.JSON(http.StatusCreated, shiftResponse{Open: true, Shift: &sh})
}

func (h *ShiftHandler) Close(c *gin.Context) {
	rep, err := h.service.Close(c.Request.Context(), auth.CallerFrom(c).Actor())
	if err != nil {
		httpx.Fail(c, h.lg, "close_shift_failed", err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
