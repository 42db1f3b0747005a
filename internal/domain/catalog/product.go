// Package catalog holds the product catalog entities.
package catalog

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
)

// ProductType classifies how a product charges the account.
type ProductType string

const (
	// ProductTypeOneTime is a one time charge.
	ProductTypeOneTime ProductType = "ONE TIME"
	// ProductTypeCredit is a credit applied against the account.
	ProductTypeCredit ProductType = "CREDIT"
)

// IsValid checks if the type is a known ProductType
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeOneTime, ProductTypeCredit:
		return true
	}
	return false
}

// String returns the string representation of ProductType
func (t ProductType) String() string {
	return string(t)
}

// Product represents a product in the product catalog. The SKU is the
// product's identity; the list price is in integer minor units.
type Product struct {
	SKU       string
	Type      ProductType
	ListPrice int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct creates a new catalog product.
func NewProduct(sku string, productType ProductType, listPrice int64) (*Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Sku is required")
	}
	if len(sku) > 32 {
		return nil, shared.NewDomainError("INVALID_SKU", "Sku cannot exceed 32 characters")
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TYPE", "Product type must be ONE TIME or CREDIT")
	}

	now := time.Now().UTC()
	return &Product{
		SKU:       sku,
		Type:      productType,
		ListPrice: listPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsCredit returns true for credit products, whose effective order price is
// negative.
func (p *Product) IsCredit() bool {
	return p.Type == ProductTypeCredit
}
