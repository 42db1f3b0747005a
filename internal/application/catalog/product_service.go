package catalog

import (
	"context"
	"errors"

	"github.com/ecuDickens/project-orders-backend/internal/domain/catalog"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
)

// ProductCache caches catalog products by SKU. The catalog is small and
// read-heavy during order placement, so lookups go through the cache first.
// A cache failure is never fatal; the service falls back to the repository.
type ProductCache interface {
	Get(ctx context.Context, sku string) (*catalog.Product, bool)
	Set(ctx context.Context, product *catalog.Product)
	Invalidate(ctx context.Context, sku string)
}

// ProductService handles catalog-related business operations
type ProductService struct {
	productRepo catalog.Repository
	cache       ProductCache
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.Repository, cache ProductCache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// Create creates a new catalog product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.productRepo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this sku already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SKU, catalog.ProductType(req.Type), req.ListPrice)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySKU retrieves a product by its SKU, serving from cache when possible
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.lookup(ctx, sku)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves all catalog products
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// EffectivePrice resolves the signed unit price an order pays for the given
// SKU: the list price for one time products, its negation for credit
// products.
func (s *ProductService) EffectivePrice(ctx context.Context, sku string) (int64, error) {
	product, err := s.lookup(ctx, sku)
	if err != nil {
		return 0, err
	}
	if product.IsCredit() {
		return -product.ListPrice, nil
	}
	return product.ListPrice, nil
}

func (s *ProductService) lookup(ctx context.Context, sku string) (*catalog.Product, error) {
	if product, ok := s.cache.Get(ctx, sku); ok {
		return product, nil
	}

	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, product)
	return product, nil
}
