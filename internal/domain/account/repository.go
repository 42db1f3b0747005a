package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for accounts.
type Repository interface {
	Create(ctx context.Context, acct *Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// UpdateWithLock re-reads the account under an exclusive row lock, applies
	// fn to the fresh snapshot, and persists the result in one transaction.
	UpdateWithLock(ctx context.Context, id uuid.UUID, fn func(*Account) error) (*Account, error)
}
