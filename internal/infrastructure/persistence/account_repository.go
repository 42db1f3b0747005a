package persistence

import (
	"context"
	"errors"

	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements account.Repository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Create inserts a new account
func (r *GormAccountRepository) Create(ctx context.Context, acct *account.Account) error {
	var model models.AccountModel
	model.FromDomain(acct)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "Account with this email already exists")
		}
		return err
	}
	return nil
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	model, err := findByID[models.AccountModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// UpdateWithLock re-reads the account under an exclusive row lock, applies fn
// to the fresh snapshot, and persists the result in one transaction.
func (r *GormAccountRepository) UpdateWithLock(ctx context.Context, id uuid.UUID, fn func(*account.Account) error) (*account.Account, error) {
	var updated *account.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := lockAndFetch[models.AccountModel](ctx, tx, "id = ?", id)
		if err != nil {
			return err
		}

		acct := model.ToDomain()
		if err := fn(acct); err != nil {
			return err
		}

		model.FromDomain(acct)
		if err := tx.Save(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError("ALREADY_EXISTS", "Account with this email already exists")
			}
			return err
		}

		updated = acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
