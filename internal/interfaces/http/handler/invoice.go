package handler

import (
	billingapp "github.com/ecuDickens/project-orders-backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	billingService *billingapp.BillingService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(billingService *billingapp.BillingService) *InvoiceHandler {
	return &InvoiceHandler{billingService: billingService}
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.GET("/:id", h.GetByID)
}

// GetByID returns an invoice with its credit and payment lines
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.billingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
