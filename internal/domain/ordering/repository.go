package ordering

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Order, error)
}
