package billing

import (
	"context"

	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/google/uuid"
)

// LedgerTx is the set of operations the billing orchestrator performs inside
// one transaction. Lock methods acquire pessimistic row locks and return the
// current row state as seen under the lock; Save methods write back mutations
// made by the orchestrator. The implementation must guarantee that either all
// writes commit or none do.
type LedgerTx interface {
	// AccountWithOrders reads the account and all of its orders, items
	// included, without locking.
	AccountWithOrders(ctx context.Context, accountID uuid.UUID) (*account.Account, []*ordering.Order, error)

	// LockAccount re-reads the account under a row lock.
	LockAccount(ctx context.Context, accountID uuid.UUID) (*account.Account, error)

	// SaveAccountBalance persists the account's credit balance.
	SaveAccountBalance(ctx context.Context, acc *account.Account) error

	// CreateInvoice inserts the invoice with its attached credit and
	// payment rows.
	CreateInvoice(ctx context.Context, inv *Invoice) error

	// LockOrder re-reads a single order under a row lock, items included.
	LockOrder(ctx context.Context, orderID uuid.UUID) (*ordering.Order, error)

	// SaveOrderStatus persists the order's status.
	SaveOrderStatus(ctx context.Context, o *ordering.Order) error

	// LockOrderItem re-reads a single order item under a row lock.
	LockOrderItem(ctx context.Context, itemID uuid.UUID) (*ordering.OrderItem, error)

	// SaveOrderItemInvoice persists the item's invoice reference.
	SaveOrderItemInvoice(ctx context.Context, item *ordering.OrderItem) error
}

// Ledger opens billing transactions. A returned error from fn rolls the
// transaction back; a nil return commits it.
type Ledger interface {
	InTransaction(ctx context.Context, fn func(tx LedgerTx) error) error
}
