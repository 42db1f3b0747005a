package catalog

import "context"

// Repository defines persistence operations for catalog products.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
}
