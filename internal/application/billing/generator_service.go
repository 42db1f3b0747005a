package billing

import (
	"context"
	"fmt"
	"math/rand"

	appaccount "github.com/ecuDickens/project-orders-backend/internal/application/account"
	appcatalog "github.com/ecuDickens/project-orders-backend/internal/application/catalog"
	appordering "github.com/ecuDickens/project-orders-backend/internal/application/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GeneratorService seeds demo accounts with already billed order history. It
// drives the real account, order, and billing services end to end, so the
// generated data obeys every invariant the production flow does: orders end
// BILLED, items link to their invoice, and balances reconcile.
type GeneratorService struct {
	accounts *appaccount.AccountService
	products *appcatalog.ProductService
	orders   *appordering.OrderService
	billing  *BillingService
	maxCount int
	logger   *zap.Logger
}

// NewGeneratorService creates a new GeneratorService. maxCount caps how many
// accounts a single Generate call may create; non-positive values fall back
// to 100.
func NewGeneratorService(
	accounts *appaccount.AccountService,
	products *appcatalog.ProductService,
	orders *appordering.OrderService,
	billing *BillingService,
	maxCount int,
	logger *zap.Logger,
) *GeneratorService {
	if maxCount < 1 {
		maxCount = 100
	}
	return &GeneratorService{
		accounts: accounts,
		products: products,
		orders:   orders,
		billing:  billing,
		maxCount: maxCount,
		logger:   logger,
	}
}

// Generate creates count demo accounts. Each account's email is the base
// email prefixed with its index, gets one to five orders of random catalog
// products, and is billed immediately. Returns the generated account IDs.
func (s *GeneratorService) Generate(ctx context.Context, email string, count int) ([]uuid.UUID, error) {
	if !account.ValidEmail(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Valid base email address required")
	}
	if count < 1 || count > s.maxCount {
		return nil, shared.NewDomainError("INVALID_COUNT",
			fmt.Sprintf("Count must be between 1 and %d", s.maxCount))
	}

	catalog, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, shared.NewDomainError("EMPTY_CATALOG", "Cannot generate orders from an empty catalog")
	}

	accountIDs := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		acct, err := s.accounts.Create(ctx, appaccount.CreateAccountRequest{
			Email:      fmt.Sprintf("%d%s", i, email),
			FirstName:  "Test",
			LastName:   fmt.Sprintf("Account%d", i),
			Address1:   "1001 East 5th Street",
			City:       "Greenville",
			State:      "NC",
			PostalCode: "27858",
		})
		if err != nil {
			return nil, err
		}

		for o := 0; o < randomBetween(1, 5); o++ {
			items := make([]appordering.OrderItemRequest, 0, 5)
			for oi := 0; oi < randomBetween(1, 5); oi++ {
				product := catalog[rand.Intn(len(catalog))]
				items = append(items, appordering.OrderItemRequest{
					ProductSKU: product.SKU,
					Quantity:   int64(randomBetween(1, 4)),
				})
			}
			if _, err := s.orders.Place(ctx, appordering.PlaceOrderRequest{
				AccountID: acct.ID,
				Items:     items,
			}); err != nil {
				return nil, err
			}
		}

		if _, err := s.billing.BillAccount(ctx, acct.ID); err != nil {
			return nil, err
		}
		accountIDs = append(accountIDs, acct.ID)
	}

	s.logger.Info("generated demo accounts",
		zap.String("base_email", email),
		zap.Int("count", len(accountIDs)),
	)
	return accountIDs, nil
}

func randomBetween(min, max int) int {
	return rand.Intn(max-min+1) + min
}
