package handler

import (
	accountapp "github.com/ecuDickens/project-orders-backend/internal/application/account"
	billingapp "github.com/ecuDickens/project-orders-backend/internal/application/billing"
	orderingapp "github.com/ecuDickens/project-orders-backend/internal/application/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account-related API endpoints
type AccountHandler struct {
	BaseHandler
	accountService *accountapp.AccountService
	orderService   *orderingapp.OrderService
	billingService *billingapp.BillingService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(
	accountService *accountapp.AccountService,
	orderService *orderingapp.OrderService,
	billingService *billingapp.BillingService,
) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		orderService:   orderService,
		billingService: billingService,
	}
}

// RegisterRoutes registers all account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts")
	accounts.POST("", h.Create)
	accounts.GET("/:id", h.GetByID)
	accounts.POST("/:id", h.Update)
	accounts.POST("/:id/bill", h.Bill)
	accounts.GET("/:id/orders", h.ListOrders)
	accounts.GET("/:id/invoices", h.ListInvoices)
}

// Create creates a new account
func (h *AccountHandler) Create(c *gin.Context) {
	var req accountapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns a single account
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	resp, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies a partial profile update under an exclusive row lock
func (h *AccountHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req accountapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.accountService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Bill runs a billing pass over the account's unbilled orders. Responds 200
// with the invoice when one was generated and 204 when there was nothing to
// bill.
func (h *AccountHandler) Bill(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	invoice, err := h.billingService.BillAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if invoice == nil {
		h.NoContent(c)
		return
	}
	h.Success(c, invoice)
}

// ListOrders returns all orders placed against the account
func (h *AccountHandler) ListOrders(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	orders, err := h.orderService.ListByAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListInvoices returns all invoices generated for the account
func (h *AccountHandler) ListInvoices(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	invoices, err := h.billingService.ListInvoicesByAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}
