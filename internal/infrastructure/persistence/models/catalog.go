package models

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/catalog"
)

// ProductModel is the persistence model for catalog products. The SKU is the
// primary key; products have no surrogate ID.
type ProductModel struct {
	SKU       string    `gorm:"type:varchar(32);primary_key"`
	Type      string    `gorm:"type:varchar(16);not null"`
	ListPrice int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts ProductModel to domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		SKU:       m.SKU,
		Type:      catalog.ProductType(m.Type),
		ListPrice: m.ListPrice,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates ProductModel from domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.SKU = p.SKU
	m.Type = p.Type.String()
	m.ListPrice = p.ListPrice
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
