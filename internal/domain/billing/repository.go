package billing

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read operations for invoices. Invoices are written only
// through the Ledger; reads outside of billing go through here.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Invoice, error)
}
