package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/catalog/service"
)

type Handler struct {
	ProductHandler *ProductHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		ProductHandler: &ProductHandler{service: s.ProductService, lg: lg},
	}
}

type ProductHandler struct {
	service service.ProductServiceInterface
	lg      *logger.Logger
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.Menu(c.Request.Context())
	if err != nil {
		httpx.Fail(c, h.lg, "list_products_failed", err)
		return
	}
	c.JSON(http.StatusOK, products)
}
