package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	accountapp "github.com/ecuDickens/project-orders-backend/internal/application/account"
	billingapp "github.com/ecuDickens/project-orders-backend/internal/application/billing"
	orderingapp "github.com/ecuDickens/project-orders-backend/internal/application/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/billing"
	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	httpdto "github.com/ecuDickens/project-orders-backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

// MockOrderRepository is a mock implementation of ordering.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ordering.Order, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of billing.Repository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

// stubLedger runs billing transactions against canned account and order
// state. Writes are collected but not verified here; orchestration is
// covered by the billing service tests.
type stubLedger struct {
	account *account.Account
	orders  []*ordering.Order
	err     error
}

func (l *stubLedger) InTransaction(ctx context.Context, fn func(tx billing.LedgerTx) error) error {
	if l.err != nil {
		return l.err
	}
	return fn(&stubLedgerTx{ledger: l})
}

type stubLedgerTx struct {
	ledger *stubLedger
}

func (t *stubLedgerTx) AccountWithOrders(ctx context.Context, accountID uuid.UUID) (*account.Account, []*ordering.Order, error) {
	if t.ledger.account == nil || t.ledger.account.ID != accountID {
		return nil, nil, shared.ErrNotFound
	}
	return t.ledger.account, t.ledger.orders, nil
}

func (t *stubLedgerTx) LockAccount(ctx context.Context, accountID uuid.UUID) (*account.Account, error) {
	return t.ledger.account, nil
}

func (t *stubLedgerTx) SaveAccountBalance(ctx context.Context, acc *account.Account) error {
	return nil
}

func (t *stubLedgerTx) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	return nil
}

func (t *stubLedgerTx) LockOrder(ctx context.Context, orderID uuid.UUID) (*ordering.Order, error) {
	for _, o := range t.ledger.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (t *stubLedgerTx) SaveOrderStatus(ctx context.Context, o *ordering.Order) error {
	return nil
}

func (t *stubLedgerTx) LockOrderItem(ctx context.Context, itemID uuid.UUID) (*ordering.OrderItem, error) {
	for _, o := range t.ledger.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				return &o.Items[i], nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (t *stubLedgerTx) SaveOrderItemInvoice(ctx context.Context, item *ordering.OrderItem) error {
	return nil
}

type accountHandlerFixture struct {
	engine      *gin.Engine
	accountRepo *MockAccountRepository
	orderRepo   *MockOrderRepository
	invoiceRepo *MockInvoiceRepository
	ledger      *stubLedger
}

type stubPriceResolver struct{}

func (stubPriceResolver) EffectivePrice(ctx context.Context, sku string) (int64, error) {
	return 1000, nil
}

func newAccountHandlerFixture(t *testing.T) *accountHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accountRepo := new(MockAccountRepository)
	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)
	ledger := &stubLedger{}

	accountService := accountapp.NewAccountService(accountRepo)
	orderService := orderingapp.NewOrderService(orderRepo, accountRepo, stubPriceResolver{})
	billingService := billingapp.NewBillingService(ledger, invoiceRepo, zap.NewNop())

	h := NewAccountHandler(accountService, orderService, billingService)

	engine := gin.New()
	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)

	return &accountHandlerFixture{
		engine:      engine,
		accountRepo: accountRepo,
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		ledger:      ledger,
	}
}

func (f *accountHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, f.engine, method, path, body)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) httpdto.Response {
	t.Helper()

	var resp httpdto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAccountHandler_Create(t *testing.T) {
	t.Run("creates an account", func(t *testing.T) {
		f := newAccountHandlerFixture(t)
		f.accountRepo.On("Create", mock.Anything, mock.AnythingOfType("*account.Account")).Return(nil)

		w := f.do(t, http.MethodPost, "/api/v1/accounts", gin.H{
			"email":      "demo@example.com",
			"first_name": "Test",
			"last_name":  "Account",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		f.accountRepo.AssertExpectations(t)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		w := f.do(t, http.MethodPost, "/api/v1/accounts", gin.H{
			"email":      "not-an-email",
			"first_name": "Test",
			"last_name":  "Account",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.accountRepo.AssertNotCalled(t, "Create")
	})

	t.Run("maps duplicate email to 409", func(t *testing.T) {
		f := newAccountHandlerFixture(t)
		f.accountRepo.On("Create", mock.Anything, mock.Anything).
			Return(shared.NewDomainError("ALREADY_EXISTS", "Account with this email already exists"))

		w := f.do(t, http.MethodPost, "/api/v1/accounts", gin.H{
			"email":      "dup@example.com",
			"first_name": "Test",
			"last_name":  "Account",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, httpdto.ErrCodeAlreadyExists, resp.Error.Code)
	})
}

func TestAccountHandler_GetByID(t *testing.T) {
	t.Run("returns the account", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		acct, err := account.NewAccount("demo@example.com", "Test", "Account", "", "", "", "")
		require.NoError(t, err)
		f.accountRepo.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)

		w := f.do(t, http.MethodGet, "/api/v1/accounts/"+acct.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("maps missing account to 404", func(t *testing.T) {
		f := newAccountHandlerFixture(t)
		id := uuid.New()
		f.accountRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := f.do(t, http.MethodGet, "/api/v1/accounts/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, httpdto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("rejects a malformed ID", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		w := f.do(t, http.MethodGet, "/api/v1/accounts/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAccountHandler_Update(t *testing.T) {
	t.Run("applies a partial update", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		acct, err := account.NewAccount("demo@example.com", "Test", "Account", "", "", "", "")
		require.NoError(t, err)
		f.accountRepo.On("UpdateWithLock", mock.Anything, acct.ID, mock.Anything).Return(acct, nil)

		w := f.do(t, http.MethodPost, "/api/v1/accounts/"+acct.ID.String(), gin.H{
			"city": "Greenville",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Greenville", acct.City)
	})
}

func TestAccountHandler_Bill(t *testing.T) {
	t.Run("returns 204 when there is nothing to bill", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		acct, err := account.NewAccount("demo@example.com", "Test", "Account", "", "", "", "")
		require.NoError(t, err)
		f.ledger.account = acct

		w := f.do(t, http.MethodPost, "/api/v1/accounts/"+acct.ID.String()+"/bill", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("returns the invoice when orders were billed", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		acct, err := account.NewAccount("demo@example.com", "Test", "Account", "", "", "", "")
		require.NoError(t, err)
		order, err := ordering.NewOrder(acct.ID, []ordering.ItemSpec{
			{ProductSKU: "widget", Quantity: 2, Price: 30000},
		})
		require.NoError(t, err)
		f.ledger.account = acct
		f.ledger.orders = []*ordering.Order{order}

		w := f.do(t, http.MethodPost, "/api/v1/accounts/"+acct.ID.String()+"/bill", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "600.00", data["total"])
	})

	t.Run("maps a lost billing race to 409", func(t *testing.T) {
		f := newAccountHandlerFixture(t)
		f.ledger.err = shared.ErrConcurrencyConflict

		w := f.do(t, http.MethodPost, "/api/v1/accounts/"+uuid.NewString()+"/bill", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, httpdto.ErrCodeConcurrencyConflict, resp.Error.Code)
	})

	t.Run("maps an unknown account to 404", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		w := f.do(t, http.MethodPost, "/api/v1/accounts/"+uuid.NewString()+"/bill", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAccountHandler_ListOrders(t *testing.T) {
	t.Run("returns the account's orders", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		accountID := uuid.New()
		order, err := ordering.NewOrder(accountID, []ordering.ItemSpec{
			{ProductSKU: "widget", Quantity: 1, Price: 1000},
		})
		require.NoError(t, err)
		f.orderRepo.On("FindByAccount", mock.Anything, accountID).Return([]ordering.Order{*order}, nil)

		w := f.do(t, http.MethodGet, "/api/v1/accounts/"+accountID.String()+"/orders", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 1)
	})
}

func TestAccountHandler_ListInvoices(t *testing.T) {
	t.Run("returns the account's invoices", func(t *testing.T) {
		f := newAccountHandlerFixture(t)

		accountID := uuid.New()
		inv, err := billing.NewInvoice(accountID, 50000)
		require.NoError(t, err)
		f.invoiceRepo.On("FindByAccount", mock.Anything, accountID).Return([]billing.Invoice{*inv}, nil)

		w := f.do(t, http.MethodGet, "/api/v1/accounts/"+accountID.String()+"/invoices", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data, ok := resp.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 1)
	})
}
