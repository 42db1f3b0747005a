package persistence

import (
	"context"
	"testing"

	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/billing"
	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&accountTestModel{},
		&orderTestModel{},
		&orderItemTestModel{},
		&invoiceTestModel{},
		&creditTestModel{},
		&paymentTestModel{},
	))
	return db
}

// seedBillableAccount persists an account and one NEW order against it.
func seedBillableAccount(t *testing.T, db *gorm.DB, balance int64, specs ...ordering.ItemSpec) (*account.Account, *ordering.Order) {
	t.Helper()

	acct := newTestAccount(t, uuid.NewString()+"@example.com")
	acct.CreditBalance = balance
	require.NoError(t, NewGormAccountRepository(db).Create(context.Background(), acct))

	order := newPersistedOrder(t, acct.ID, specs...)
	require.NoError(t, NewGormOrderRepository(db).Create(context.Background(), order))

	return acct, order
}

func TestGormBillingLedger_InTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits a full billing pass", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormBillingLedger(db)

		acct, order := seedBillableAccount(t, db, 50000,
			ordering.ItemSpec{ProductSKU: "widget", Quantity: 2, Price: 30000},
			ordering.ItemSpec{ProductSKU: "gadget", Quantity: 1, Price: 10000},
		)

		var invoiceID uuid.UUID
		err := ledger.InTransaction(ctx, func(tx billing.LedgerTx) error {
			loadedAcct, orders, err := tx.AccountWithOrders(ctx, acct.ID)
			if err != nil {
				return err
			}
			require.Len(t, orders, 1)
			require.Equal(t, int64(50000), loadedAcct.CreditBalance)

			locked, err := tx.LockOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			require.True(t, locked.IsNew())
			require.Len(t, locked.Items, 2)

			lockedAcct, err := tx.LockAccount(ctx, acct.ID)
			if err != nil {
				return err
			}

			settlement := billing.ResolveSettlement(locked.Total, lockedAcct.CreditBalance)
			inv, err := billing.NewInvoice(acct.ID, locked.Total)
			if err != nil {
				return err
			}
			inv.AttachSettlement(settlement)
			invoiceID = inv.ID

			if err := tx.CreateInvoice(ctx, inv); err != nil {
				return err
			}

			lockedAcct.CreditBalance = settlement.NewBalance
			if err := tx.SaveAccountBalance(ctx, lockedAcct); err != nil {
				return err
			}

			if err := locked.MarkBilled(); err != nil {
				return err
			}
			if err := tx.SaveOrderStatus(ctx, locked); err != nil {
				return err
			}

			for i := range locked.Items {
				item, err := tx.LockOrderItem(ctx, locked.Items[i].ID)
				if err != nil {
					return err
				}
				if err := item.LinkInvoice(inv.ID); err != nil {
					return err
				}
				if err := tx.SaveOrderItemInvoice(ctx, item); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		foundAcct, err := NewGormAccountRepository(db).FindByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), foundAcct.CreditBalance)

		foundOrder, err := NewGormOrderRepository(db).FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, foundOrder.IsBilled())
		for _, item := range foundOrder.Items {
			require.NotNil(t, item.InvoiceID)
			assert.Equal(t, invoiceID, *item.InvoiceID)
		}

		foundInv, err := NewGormInvoiceRepository(db).FindByID(ctx, invoiceID)
		require.NoError(t, err)
		assert.Equal(t, int64(70000), foundInv.Total)
		require.NotNil(t, foundInv.Credit)
		assert.Equal(t, int64(50000), foundInv.Credit.TransferAmount)
		require.NotNil(t, foundInv.Payment)
		assert.Equal(t, int64(20000), foundInv.Payment.Amount)
	})

	t.Run("rolls back every write on error", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormBillingLedger(db)

		acct, order := seedBillableAccount(t, db, 10000)

		err := ledger.InTransaction(ctx, func(tx billing.LedgerTx) error {
			inv, err := billing.NewInvoice(acct.ID, order.Total)
			if err != nil {
				return err
			}
			if err := tx.CreateInvoice(ctx, inv); err != nil {
				return err
			}

			acct.CreditBalance = 0
			if err := tx.SaveAccountBalance(ctx, acct); err != nil {
				return err
			}
			return shared.ErrConcurrencyConflict
		})
		require.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		foundAcct, err := NewGormAccountRepository(db).FindByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), foundAcct.CreditBalance)

		invoices, err := NewGormInvoiceRepository(db).FindByAccount(ctx, acct.ID)
		require.NoError(t, err)
		assert.Empty(t, invoices)

		foundOrder, err := NewGormOrderRepository(db).FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, foundOrder.IsNew())
	})

	t.Run("propagates not found for missing account", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormBillingLedger(db)

		err := ledger.InTransaction(ctx, func(tx billing.LedgerTx) error {
			_, _, err := tx.AccountWithOrders(ctx, uuid.New())
			return err
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
