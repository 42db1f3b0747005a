package persistence

import (
	"context"

	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/billing"
	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBillingLedger implements billing.Ledger on top of a database
// transaction. Every operation handed to InTransaction runs against the same
// *gorm.DB transaction, so a returned error rolls back all writes.
type GormBillingLedger struct {
	db *gorm.DB
}

// NewGormBillingLedger creates a new GormBillingLedger
func NewGormBillingLedger(db *gorm.DB) *GormBillingLedger {
	return &GormBillingLedger{db: db}
}

// InTransaction runs fn inside one database transaction
func (l *GormBillingLedger) InTransaction(ctx context.Context, fn func(tx billing.LedgerTx) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedgerTx{tx: tx})
	})
}

// gormLedgerTx scopes ledger operations to one open transaction.
type gormLedgerTx struct {
	tx *gorm.DB
}

func (t *gormLedgerTx) AccountWithOrders(ctx context.Context, accountID uuid.UUID) (*account.Account, []*ordering.Order, error) {
	acctModel, err := findByID[models.AccountModel](ctx, t.tx, "id = ?", accountID)
	if err != nil {
		return nil, nil, err
	}

	var orderModels []models.OrderModel
	if err := t.tx.WithContext(ctx).
		Preload("Items").
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, nil, err
	}

	orders := make([]*ordering.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return acctModel.ToDomain(), orders, nil
}

func (t *gormLedgerTx) LockAccount(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	model, err := lockAndFetch[models.AccountModel](ctx, t.tx, "id = ?", accountID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (t *gormLedgerTx) SaveAccountBalance(ctx context.Context, acc *account.Account) error {
	return t.tx.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("id = ?", acc.ID).
		Update("credit_balance", acc.CreditBalance).Error
}

func (t *gormLedgerTx) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(inv)
	return t.tx.WithContext(ctx).Create(&model).Error
}

func (t *gormLedgerTx) LockOrder(ctx context.Context, orderID uuid.UUID) (*ordering.Order, error) {
	model, err := lockAndFetch[models.OrderModel](ctx, t.tx, "id = ?", orderID)
	if err != nil {
		return nil, err
	}

	// The locking clause cannot be combined with Preload, so items are
	// loaded in a second read once the order row is held.
	if err := t.tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (t *gormLedgerTx) SaveOrderStatus(ctx context.Context, o *ordering.Order) error {
	return t.tx.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Update("status", o.Status.String()).Error
}

func (t *gormLedgerTx) LockOrderItem(ctx context.Context, itemID uuid.UUID) (*ordering.OrderItem, error) {
	model, err := lockAndFetch[models.OrderItemModel](ctx, t.tx, "id = ?", itemID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (t *gormLedgerTx) SaveOrderItemInvoice(ctx context.Context, item *ordering.OrderItem) error {
	return t.tx.WithContext(ctx).
		Model(&models.OrderItemModel{}).
		Where("id = ?", item.ID).
		Update("invoice_id", item.InvoiceID).Error
}

var (
	_ billing.Ledger   = (*GormBillingLedger)(nil)
	_ billing.LedgerTx = (*gormLedgerTx)(nil)
)
