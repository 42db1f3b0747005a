package ordering

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OrderItemRequest represents one line of a new order. The price is resolved
// from the catalog, never taken from the caller.
type OrderItemRequest struct {
	ProductSKU string `json:"product_sku" binding:"required,min=1,max=32"`
	Quantity   int64  `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderRequest represents a request to place a new order
type PlaceOrderRequest struct {
	AccountID uuid.UUID          `json:"account_id" binding:"required"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemResponse represents an order item in API responses
type OrderItemResponse struct {
	ID         uuid.UUID         `json:"id"`
	ProductSKU string            `json:"product_sku"`
	InvoiceID  *uuid.UUID        `json:"invoice_id,omitempty"`
	Quantity   int64             `json:"quantity"`
	Price      valueobject.Money `json:"price"`
	Total      valueobject.Money `json:"total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	AccountID uuid.UUID           `json:"account_id"`
	Status    string              `json:"status"`
	Total     valueobject.Money   `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, OrderItemResponse{
			ID:         item.ID,
			ProductSKU: item.ProductSKU,
			InvoiceID:  item.InvoiceID,
			Quantity:   item.Quantity,
			Price:      valueobject.NewMoney(item.Price),
			Total:      valueobject.NewMoney(item.Total),
		})
	}

	return OrderResponse{
		ID:        o.ID,
		AccountID: o.AccountID,
		Status:    o.Status.String(),
		Total:     valueobject.NewMoney(o.Total),
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
