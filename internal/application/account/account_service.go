package account

import (
	"context"

	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/google/uuid"
)

// AccountService handles account-related business operations
type AccountService struct {
	accountRepo account.Repository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo account.Repository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// Create creates a new account with a zero credit balance
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	acct, err := account.NewAccount(req.Email, req.FirstName, req.LastName, req.Address1, req.City, req.State, req.PostalCode)
	if err != nil {
		return nil, err
	}
	acct.Address2 = req.Address2

	if err := s.accountRepo.Create(ctx, acct); err != nil {
		return nil, err
	}

	resp := ToAccountResponse(acct)
	return &resp, nil
}

// GetByID retrieves an account by its ID
func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	acct, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToAccountResponse(acct)
	return &resp, nil
}

// Update applies the non-empty fields of the request to the account. The
// mutation runs under a row lock so concurrent billing cannot lose the
// balance it writes.
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	acct, err := s.accountRepo.UpdateWithLock(ctx, id, func(a *account.Account) error {
		return a.ApplyProfileUpdate(account.ProfileUpdate{
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Address1:   req.Address1,
			Address2:   req.Address2,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := ToAccountResponse(acct)
	return &resp, nil
}
