package handler

import (
	orderingapp "github.com/ecuDickens/project-orders-backend/internal/application/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.Place)
	orders.GET("/:id", h.GetByID)
}

// Place creates a NEW order. Item prices are resolved from the catalog and
// fixed at creation.
func (h *OrderHandler) Place(c *gin.Context) {
	var req orderingapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.orderService.Place(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a single order with its items
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
