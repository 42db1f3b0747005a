package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	accountapp "github.com/ecuDickens/project-orders-backend/internal/application/account"
	billingapp "github.com/ecuDickens/project-orders-backend/internal/application/billing"
	catalogapp "github.com/ecuDickens/project-orders-backend/internal/application/catalog"
	orderingapp "github.com/ecuDickens/project-orders-backend/internal/application/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/cache"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// billingStack wires the full application over a real database.
type billingStack struct {
	accounts *accountapp.AccountService
	products *catalogapp.ProductService
	orders   *orderingapp.OrderService
	billing  *billingapp.BillingService
}

func newBillingStack(tdb *TestDB) *billingStack {
	accountRepo := persistence.NewGormAccountRepository(tdb.DB)
	productRepo := persistence.NewGormProductRepository(tdb.DB)
	orderRepo := persistence.NewGormOrderRepository(tdb.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(tdb.DB)
	ledger := persistence.NewGormBillingLedger(tdb.DB)

	productService := catalogapp.NewProductService(productRepo, cache.NewInMemoryProductCache(time.Minute))
	return &billingStack{
		accounts: accountapp.NewAccountService(accountRepo),
		products: productService,
		orders:   orderingapp.NewOrderService(orderRepo, accountRepo, productService),
		billing:  billingapp.NewBillingService(ledger, invoiceRepo, zap.NewNop()),
	}
}

func (s *billingStack) seedCatalog(t *testing.T, ctx context.Context) {
	t.Helper()

	for _, req := range []catalogapp.CreateProductRequest{
		{SKU: "widget", Type: "ONE TIME", ListPrice: 30000},
		{SKU: "gadget", Type: "ONE TIME", ListPrice: 20000},
		{SKU: "loyalty-credit", Type: "CREDIT", ListPrice: 15000},
	} {
		_, err := s.products.Create(ctx, req)
		require.NoError(t, err)
	}
}

func (s *billingStack) createAccount(t *testing.T, ctx context.Context, email string) *accountapp.AccountResponse {
	t.Helper()

	acct, err := s.accounts.Create(ctx, accountapp.CreateAccountRequest{
		Email:     email,
		FirstName: "Test",
		LastName:  "Account",
	})
	require.NoError(t, err)
	return acct
}

func TestBillingFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	stack := newBillingStack(tdb)
	ctx := context.Background()
	stack.seedCatalog(t, ctx)

	t.Run("bills new orders into an invoice", func(t *testing.T) {
		acct := stack.createAccount(t, ctx, "flow@example.com")

		// widget x2 (600.00) + gadget x1 (200.00)
		_, err := stack.orders.Place(ctx, orderingapp.PlaceOrderRequest{
			AccountID: acct.ID,
			Items: []orderingapp.OrderItemRequest{
				{ProductSKU: "widget", Quantity: 2},
				{ProductSKU: "gadget", Quantity: 1},
			},
		})
		require.NoError(t, err)

		invoice, err := stack.billing.BillAccount(ctx, acct.ID)
		require.NoError(t, err)
		require.NotNil(t, invoice)

		assert.Equal(t, "800.00", invoice.Total.String())
		assert.Nil(t, invoice.Credit)
		require.NotNil(t, invoice.Payment)
		assert.Equal(t, "800.00", invoice.Payment.Amount.String())

		orders, err := stack.orders.ListByAccount(ctx, acct.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "BILLED", orders[0].Status)
		for _, item := range orders[0].Items {
			assert.NotNil(t, item.InvoiceID)
		}
	})

	t.Run("credit purchase grows the balance and offsets the next invoice", func(t *testing.T) {
		acct := stack.createAccount(t, ctx, "credit@example.com")

		// A lone credit item nets a negative invoice: 150.00 flows to
		// the account balance.
		_, err := stack.orders.Place(ctx, orderingapp.PlaceOrderRequest{
			AccountID: acct.ID,
			Items: []orderingapp.OrderItemRequest{
				{ProductSKU: "loyalty-credit", Quantity: 1},
			},
		})
		require.NoError(t, err)

		invoice, err := stack.billing.BillAccount(ctx, acct.ID)
		require.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, "-150.00", invoice.Total.String())
		require.NotNil(t, invoice.Credit)
		assert.True(t, invoice.Credit.FromInvoiceToAccount)

		updated, err := stack.accounts.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, "150.00", updated.CreditBalance.String())

		// The next charge consumes the stored credit first.
		_, err = stack.orders.Place(ctx, orderingapp.PlaceOrderRequest{
			AccountID: acct.ID,
			Items: []orderingapp.OrderItemRequest{
				{ProductSKU: "gadget", Quantity: 1},
			},
		})
		require.NoError(t, err)

		second, err := stack.billing.BillAccount(ctx, acct.ID)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, "200.00", second.Total.String())
		require.NotNil(t, second.Credit)
		assert.False(t, second.Credit.FromInvoiceToAccount)
		assert.Equal(t, "150.00", second.Credit.TransferAmount.String())
		require.NotNil(t, second.Payment)
		assert.Equal(t, "50.00", second.Payment.Amount.String())

		drained, err := stack.accounts.GetByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, "0.00", drained.CreditBalance.String())
	})

	t.Run("second billing pass has nothing to bill", func(t *testing.T) {
		acct := stack.createAccount(t, ctx, "idempotent@example.com")

		_, err := stack.orders.Place(ctx, orderingapp.PlaceOrderRequest{
			AccountID: acct.ID,
			Items: []orderingapp.OrderItemRequest{
				{ProductSKU: "widget", Quantity: 1},
			},
		})
		require.NoError(t, err)

		first, err := stack.billing.BillAccount(ctx, acct.ID)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := stack.billing.BillAccount(ctx, acct.ID)
		require.NoError(t, err)
		assert.Nil(t, second)
	})

	t.Run("unknown account is not billable", func(t *testing.T) {
		_, err := stack.billing.BillAccount(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestBillingFlow_ConcurrentBilling(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	stack := newBillingStack(tdb)
	ctx := context.Background()
	stack.seedCatalog(t, ctx)

	acct := stack.createAccount(t, ctx, "race@example.com")

	_, err := stack.orders.Place(ctx, orderingapp.PlaceOrderRequest{
		AccountID: acct.ID,
		Items: []orderingapp.OrderItemRequest{
			{ProductSKU: "widget", Quantity: 3},
		},
	})
	require.NoError(t, err)

	// Two simultaneous billing passes over the same account. Exactly one
	// may produce the invoice; the loser either aborts with a conflict or
	// finds nothing left to bill.
	const attempts = 2
	results := make([]*billingapp.InvoiceResponse, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = stack.billing.BillAccount(ctx, acct.ID)
		}(i)
	}
	wg.Wait()

	var invoices int
	for i := 0; i < attempts; i++ {
		if errs[i] != nil {
			assert.ErrorIs(t, errs[i], shared.ErrConcurrencyConflict)
			continue
		}
		if results[i] != nil {
			invoices++
		}
	}
	assert.Equal(t, 1, invoices, "exactly one attempt must bill the order")

	invoiceList, err := stack.billing.ListInvoicesByAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Len(t, invoiceList, 1)

	orders, err := stack.orders.ListByAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "BILLED", orders[0].Status)
}
