package catalog

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/catalog"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared/valueobject"
)

// CreateProductRequest represents a request to create a new catalog product.
// The list price is given in minor units (cents) and must be positive; credit
// products are negated when ordered, not in the catalog.
type CreateProductRequest struct {
	SKU       string `json:"sku" binding:"required,min=1,max=32"`
	Type      string `json:"type" binding:"required,oneof='ONE TIME' CREDIT"`
	ListPrice int64  `json:"list_price" binding:"required,gt=0"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	SKU       string            `json:"sku"`
	Type      string            `json:"type"`
	ListPrice valueobject.Money `json:"list_price"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		SKU:       p.SKU,
		Type:      p.Type.String(),
		ListPrice: valueobject.NewMoney(p.ListPrice),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
