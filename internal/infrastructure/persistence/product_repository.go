package persistence

import (
	"context"
	"errors"

	"github.com/ecuDickens/project-orders-backend/internal/domain/catalog"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.Repository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create inserts a new product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "Product with this sku already exists")
		}
		return err
	}
	return nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	model, err := findByID[models.ProductModel](ctx, r.db, "sku = ?", sku)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all catalog products ordered by SKU
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).Order("sku").Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products, nil
}
