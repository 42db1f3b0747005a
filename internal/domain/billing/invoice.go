// Package billing holds the billing core: the invoice aggregate, the invoice
// assembler that aggregates unbilled orders, the credit settlement resolver,
// and the ledger contract the orchestrator drives its transaction through.
package billing

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Credit records a balance transfer between an account and an invoice.
// FromInvoiceToAccount=true grants credit to the account (net-credit billing,
// e.g. returns); false consumes existing account credit to pay the invoice.
type Credit struct {
	ID                   uuid.UUID
	AccountID            uuid.UUID
	InvoiceID            uuid.UUID
	FromInvoiceToAccount bool
	TransferAmount       int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Payment records the residual amount still owed on an invoice after any
// credit consumption.
type Payment struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Amount    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Invoice represents one billing event against an account. The total is the
// net signed amount billed; it can be negative for a net-credit event.
// Invoices own at most one Credit and one Payment and are immutable after
// creation.
type Invoice struct {
	shared.BaseEntity
	AccountID uuid.UUID
	Total     int64
	Credit    *Credit
	Payment   *Payment
}

// NewInvoice creates an invoice shell for the given account and net total.
func NewInvoice(accountID uuid.UUID, total int64) (*Invoice, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	return &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		Total:      total,
	}, nil
}

// AttachSettlement materializes the resolver's credit/payment drafts as rows
// owned by this invoice. Calling it again replaces any previous attachment;
// the orchestrator does this once after re-resolving under the account lock.
func (inv *Invoice) AttachSettlement(s Settlement) {
	now := time.Now().UTC()

	inv.Credit = nil
	inv.Payment = nil

	if s.Credit != nil {
		inv.Credit = &Credit{
			ID:                   uuid.New(),
			AccountID:            inv.AccountID,
			InvoiceID:            inv.ID,
			FromInvoiceToAccount: s.Credit.FromInvoiceToAccount,
			TransferAmount:       s.Credit.TransferAmount,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
	}
	if s.Payment != nil {
		inv.Payment = &Payment{
			ID:        uuid.New(),
			InvoiceID: inv.ID,
			Amount:    s.Payment.Amount,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
}
