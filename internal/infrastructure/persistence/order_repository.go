package persistence

import (
	"context"
	"errors"

	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order with its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, order *ordering.Order) error {
	var model models.OrderModel
	model.FromDomain(order)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccount finds all orders placed against an account, newest first
func (r *GormOrderRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ordering.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}
