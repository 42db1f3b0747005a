package account

import (
	"context"
	"testing"

	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of account.Repository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acct *account.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateWithLock(ctx context.Context, id uuid.UUID, fn func(*account.Account) error) (*account.Account, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	acct := args.Get(0).(*account.Account)
	if err := fn(acct); err != nil {
		return nil, err
	}
	return acct, args.Error(1)
}

func newStoredAccount(t *testing.T) *account.Account {
	t.Helper()
	acct, err := account.NewAccount("jane@example.com", "Jane", "Doe", "1 Main St", "Springfield", "IL", "62704")
	require.NoError(t, err)
	return acct
}

func TestAccountService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*account.Account")).Return(nil)
		svc := NewAccountService(repo)

		resp, err := svc.Create(context.Background(), CreateAccountRequest{
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Doe",
			Address1:  "1 Main St",
			Address2:  "Apt 2",
			City:      "Springfield",
		})

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", resp.Email)
		assert.Equal(t, "Apt 2", resp.Address2)
		assert.Equal(t, "0.00", resp.CreditBalance.String())
		assert.NotEqual(t, uuid.Nil, resp.ID)
		repo.AssertExpectations(t)
	})

	t.Run("invalid email rejected before persistence", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo)

		_, err := svc.Create(context.Background(), CreateAccountRequest{
			Email:     "not-an-email",
			FirstName: "Jane",
			LastName:  "Doe",
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate email surfaces repository error", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)
		svc := NewAccountService(repo)

		_, err := svc.Create(context.Background(), CreateAccountRequest{
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Doe",
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestAccountService_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		acct := newStoredAccount(t)
		acct.CreditBalance = 50000

		repo := new(MockAccountRepository)
		repo.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)
		svc := NewAccountService(repo)

		resp, err := svc.GetByID(context.Background(), acct.ID)
		require.NoError(t, err)
		assert.Equal(t, acct.ID, resp.ID)
		assert.Equal(t, "500.00", resp.CreditBalance.String())
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		svc := NewAccountService(repo)

		_, err := svc.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAccountService_Update(t *testing.T) {
	t.Run("merges non-empty fields", func(t *testing.T) {
		acct := newStoredAccount(t)
		repo := new(MockAccountRepository)
		repo.On("UpdateWithLock", mock.Anything, acct.ID, mock.Anything).Return(acct, nil)
		svc := NewAccountService(repo)

		resp, err := svc.Update(context.Background(), acct.ID, UpdateAccountRequest{
			City:       "Chicago",
			PostalCode: "60601",
		})

		require.NoError(t, err)
		assert.Equal(t, "Chicago", resp.City)
		assert.Equal(t, "60601", resp.PostalCode)
		assert.Equal(t, "Jane", resp.FirstName)
	})

	t.Run("invalid email update", func(t *testing.T) {
		acct := newStoredAccount(t)
		repo := new(MockAccountRepository)
		repo.On("UpdateWithLock", mock.Anything, acct.ID, mock.Anything).Return(acct, nil)
		svc := NewAccountService(repo)

		_, err := svc.Update(context.Background(), acct.ID, UpdateAccountRequest{Email: "bad"})
		assert.Error(t, err)
	})
}
