// Package account holds the customer account aggregate. The account owns the
// credit balance that billing settles against; every balance mutation goes
// through the guarded methods here so the balance can never go negative.
package account

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// Account represents a customer's account and provides the central point to
// retrieve all orders and invoices placed against it.
type Account struct {
	shared.BaseEntity
	Email         string
	FirstName     string
	LastName      string
	Address1      string
	Address2      string
	City          string
	State         string
	PostalCode    string
	CreditBalance int64
}

// NewAccount creates a new account with a zero credit balance.
func NewAccount(email, firstName, lastName, address1, city, state, postalCode string) (*Account, error) {
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First and last name required")
	}
	if !ValidEmail(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Valid email address required")
	}

	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Address1:   address1,
		City:       city,
		State:      state,
		PostalCode: postalCode,
	}, nil
}

// ValidEmail reports whether the given address is acceptable for an account.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ProfileUpdate carries the optional fields of an account update. Empty
// fields leave the current value untouched.
type ProfileUpdate struct {
	Email      string
	FirstName  string
	LastName   string
	Address1   string
	Address2   string
	City       string
	State      string
	PostalCode string
}

// ApplyProfileUpdate merges non-empty update fields into the account.
func (a *Account) ApplyProfileUpdate(u ProfileUpdate) error {
	if u.Email != "" && !ValidEmail(u.Email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address for update")
	}

	if u.Email != "" {
		a.Email = u.Email
	}
	if u.FirstName != "" {
		a.FirstName = u.FirstName
	}
	if u.LastName != "" {
		a.LastName = u.LastName
	}
	if u.Address1 != "" {
		a.Address1 = u.Address1
	}
	if u.Address2 != "" {
		a.Address2 = u.Address2
	}
	if u.City != "" {
		a.City = u.City
	}
	if u.State != "" {
		a.State = u.State
	}
	if u.PostalCode != "" {
		a.PostalCode = u.PostalCode
	}
	a.UpdatedAt = time.Now().UTC()

	return nil
}

// ConsumeCredit debits up to amount from the credit balance and returns how
// much was actually consumed. The balance is floored at zero; consuming from
// an empty balance is a no-op, not an error.
func (a *Account) ConsumeCredit(amount int64) (int64, error) {
	if amount < 0 {
		return 0, shared.NewDomainError("INVALID_AMOUNT", "Credit consumption amount cannot be negative")
	}
	consumed := amount
	if a.CreditBalance < consumed {
		consumed = a.CreditBalance
	}
	a.CreditBalance -= consumed
	a.UpdatedAt = time.Now().UTC()
	return consumed, nil
}

// GrantCredit adds amount to the credit balance, saturating at
// math.MaxInt64.
func (a *Account) GrantCredit(amount int64) error {
	if amount < 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit grant amount cannot be negative")
	}
	if a.CreditBalance > math.MaxInt64-amount {
		a.CreditBalance = math.MaxInt64
	} else {
		a.CreditBalance += amount
	}
	a.UpdatedAt = time.Now().UTC()
	return nil
}
