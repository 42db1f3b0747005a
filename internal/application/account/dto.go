package account

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CreateAccountRequest represents a request to create a new account
type CreateAccountRequest struct {
	Email      string `json:"email" binding:"required,email,max=254"`
	FirstName  string `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string `json:"last_name" binding:"required,min=1,max=100"`
	Address1   string `json:"address1" binding:"max=200"`
	Address2   string `json:"address2" binding:"max=200"`
	City       string `json:"city" binding:"max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
}

// UpdateAccountRequest represents a request to update account profile fields.
// Empty fields leave the stored value untouched.
type UpdateAccountRequest struct {
	Email      string `json:"email" binding:"omitempty,email,max=254"`
	FirstName  string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName   string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Address1   string `json:"address1" binding:"max=200"`
	Address2   string `json:"address2" binding:"max=200"`
	City       string `json:"city" binding:"max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID            uuid.UUID         `json:"id"`
	Email         string            `json:"email"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Address1      string            `json:"address1"`
	Address2      string            `json:"address2"`
	City          string            `json:"city"`
	State         string            `json:"state"`
	PostalCode    string            `json:"postal_code"`
	CreditBalance valueobject.Money `json:"credit_balance"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ToAccountResponse converts a domain Account to AccountResponse
func ToAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		Email:         a.Email,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Address1:      a.Address1,
		Address2:      a.Address2,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		CreditBalance: valueobject.NewMoney(a.CreditBalance),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
