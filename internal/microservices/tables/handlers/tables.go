package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/tables/service"
)

type TableHandler struct {
	service service.TableServiceInterface
	lg      *logger.Logger
}

func NewTableHandler(s service.TableServiceInterface, lg *logger.Logger) *TableHandler {
	return &TableHandler{service: s, lg: lg}
}

func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.service.List(c.Request.Context())
	if err != nil {
		httpx.Fail(c, h.lg, "list_tables_failed", err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) ListMine(c *gin.Context) {
	tables, err := h.service.ListMine(c.Request.Context(), auth.CallerFrom(c).ID)
	if err != nil {
		httpx.Fail(c, h.lg, "list_my_tables_failed", err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) Claim(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	t, err := h.service.Claim(c.Request.Context(), id, auth.CallerFrom(c).Actor())
	if err != nil {
		httpx.Fail(c, h.lg, "claim_table_failed", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TableHandler) Release(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	t, err := h.service.Release(c.Request.Context(), id, auth.CallerFrom(c).Actor())
	if err != nil {
		httpx.Fail(c, h.lg, "release_table_failed", err)
		return
	}
	c.JSON(http.StatusOK, t)
}
