package models

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/google/uuid"
)

// OrderModel is the persistence model for orders
type OrderModel struct {
	BaseModel
	AccountID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status    string           `gorm:"type:varchar(16);not null;index"`
	Total     int64            `gorm:"not null"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for order items
type OrderItemModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductSKU string     `gorm:"type:varchar(32);not null;index"`
	InvoiceID  *uuid.UUID `gorm:"type:uuid;index"`
	Quantity   int64      `gorm:"not null"`
	Price      int64      `gorm:"not null"`
	Total      int64      `gorm:"not null"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

// TableName specifies the table name for OrderItemModel
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts OrderModel to domain Order
func (m *OrderModel) ToDomain() *ordering.Order {
	items := make([]ordering.OrderItem, len(m.Items))
	for i := range m.Items {
		items[i] = *m.Items[i].ToDomain()
	}
	return &ordering.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		Status:     ordering.OrderStatus(m.Status),
		Total:      m.Total,
		Items:      items,
	}
}

// FromDomain populates OrderModel from domain Order
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.AccountID = o.AccountID
	m.Status = o.Status.String()
	m.Total = o.Total
	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i].FromDomain(&o.Items[i])
	}
}

// ToDomain converts OrderItemModel to domain OrderItem
func (m *OrderItemModel) ToDomain() *ordering.OrderItem {
	return &ordering.OrderItem{
		ID:         m.ID,
		OrderID:    m.OrderID,
		ProductSKU: m.ProductSKU,
		InvoiceID:  m.InvoiceID,
		Quantity:   m.Quantity,
		Price:      m.Price,
		Total:      m.Total,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain populates OrderItemModel from domain OrderItem
func (m *OrderItemModel) FromDomain(i *ordering.OrderItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.ProductSKU = i.ProductSKU
	m.InvoiceID = i.InvoiceID
	m.Quantity = i.Quantity
	m.Price = i.Price
	m.Total = i.Total
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}
