package ordering

import (
	"context"

	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/google/uuid"
)

// PriceResolver resolves the signed unit price an order pays for a SKU.
// Credit products resolve to a negative price.
type PriceResolver interface {
	EffectivePrice(ctx context.Context, sku string) (int64, error)
}

// OrderService handles order-related business operations
type OrderService struct {
	orderRepo   ordering.Repository
	accountRepo account.Repository
	prices      PriceResolver
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.Repository, accountRepo account.Repository, prices PriceResolver) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		prices:      prices,
	}
}

// Place creates a NEW order for the account. Item prices are resolved from
// the catalog at placement time and frozen on the order; later list price
// changes never affect a placed order.
func (s *OrderService) Place(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, req.AccountID); err != nil {
		return nil, err
	}

	specs := make([]ordering.ItemSpec, 0, len(req.Items))
	for _, item := range req.Items {
		price, err := s.prices.EffectivePrice(ctx, item.ProductSKU)
		if err != nil {
			return nil, err
		}
		specs = append(specs, ordering.ItemSpec{
			ProductSKU: item.ProductSKU,
			Quantity:   item.Quantity,
			Price:      price,
		})
	}

	order, err := ordering.NewOrder(req.AccountID, specs)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// ListByAccount retrieves all orders placed against an account
func (s *OrderService) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]OrderResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, nil
}
