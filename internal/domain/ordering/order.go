// Package ordering holds the order aggregate. Orders are created NEW and move
// to BILLED exactly once, when a billing event links their items to an
// invoice. Item totals are fixed at creation and never recomputed.
package ordering

import (
	"fmt"
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderStatus represents the billing status of an order
type OrderStatus string

const (
	// OrderStatusNew means the order has been created but not billed.
	OrderStatusNew OrderStatus = "NEW"
	// OrderStatusBilled means the order has been billed and an invoice created.
	OrderStatusBilled OrderStatus = "BILLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusBilled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The only legal transition is NEW -> BILLED; BILLED is terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return s == OrderStatusNew && target == OrderStatusBilled
}

// OrderItem represents a line item in an order. Quantity and effective price
// are fixed at creation; total = quantity * price, computed once. InvoiceID
// is set exactly once, when the item is billed.
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductSKU string
	InvoiceID  *uuid.UUID
	Quantity   int64
	Price      int64
	Total      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrderItem creates a new order item with its total computed from the
// quantity and effective price. Price may be negative for credit products.
func NewOrderItem(orderID uuid.UUID, productSKU string, quantity, price int64) (*OrderItem, error) {
	if productSKU == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product sku cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now().UTC()
	return &OrderItem{
		ID:         uuid.New(),
		OrderID:    orderID,
		ProductSKU: productSKU,
		Quantity:   quantity,
		Price:      price,
		Total:      quantity * price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// IsBilled returns true once the item has been linked to an invoice.
func (i *OrderItem) IsBilled() bool {
	return i.InvoiceID != nil
}

// LinkInvoice records the invoice that billed this item. An item can only
// ever be linked once.
func (i *OrderItem) LinkInvoice(invoiceID uuid.UUID) error {
	if i.InvoiceID != nil {
		return shared.NewDomainError("ALREADY_BILLED", "Order item is already linked to an invoice")
	}
	i.InvoiceID = &invoiceID
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// Order represents an order for a collection of order items.
type Order struct {
	shared.BaseEntity
	AccountID uuid.UUID
	Status    OrderStatus
	Total     int64
	Items     []OrderItem
}

// ItemSpec describes one line of a new order.
type ItemSpec struct {
	ProductSKU string
	Quantity   int64
	Price      int64
}

// NewOrder creates a NEW order from the given item specs. The order total is
// the sum of item totals, fixed here and never recomputed during billing.
func NewOrder(accountID uuid.UUID, specs []ItemSpec) (*Order, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if len(specs) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "At least one order item is required")
	}

	order := &Order{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		Status:     OrderStatusNew,
		Items:      make([]OrderItem, 0, len(specs)),
	}

	var total int64
	for _, spec := range specs {
		item, err := NewOrderItem(order.ID, spec.ProductSKU, spec.Quantity, spec.Price)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *item)
		total += item.Total
	}
	order.Total = total

	return order, nil
}

// IsNew returns true while the order has not been billed.
func (o *Order) IsNew() bool {
	return o.Status == OrderStatusNew
}

// IsBilled returns true once the order has been billed.
func (o *Order) IsBilled() bool {
	return o.Status == OrderStatusBilled
}

// MarkBilled transitions the order from NEW to BILLED.
func (o *Order) MarkBilled() error {
	if !o.Status.CanTransitionTo(OrderStatusBilled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot bill order in %s status", o.Status))
	}
	o.Status = OrderStatusBilled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// ItemCount returns the number of items in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}
