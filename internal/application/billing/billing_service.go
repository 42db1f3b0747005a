package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecuDickens/project-orders-backend/internal/domain/billing"
	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillingService orchestrates the billing workflow: aggregate an account's
// unbilled orders into an invoice, settle it against the credit balance, and
// flip the orders to BILLED. The whole event runs inside one ledger
// transaction under pessimistic row locks, so it either commits completely or
// leaves no trace.
type BillingService struct {
	ledger      billing.Ledger
	invoiceRepo billing.Repository
	logger      *zap.Logger
	metrics     *telemetry.BillingMetrics
}

// NewBillingService creates a new BillingService
func NewBillingService(ledger billing.Ledger, invoiceRepo billing.Repository, logger *zap.Logger) *BillingService {
	return &BillingService{
		ledger:      ledger,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// SetMetrics attaches billing metrics recording. When unset, billing events
// are not recorded.
func (s *BillingService) SetMetrics(metrics *telemetry.BillingMetrics) {
	s.metrics = metrics
}

// BillAccount runs one billing event for the account. It returns (nil, nil)
// when the account has no unbilled orders; callers treat that as a no-op, not
// an error. A concurrent billing of the same orders aborts the transaction
// with a concurrency conflict; the caller may retry and will then observe the
// no-op path.
func (s *BillingService) BillAccount(ctx context.Context, accountID uuid.UUID) (*InvoiceResponse, error) {
	var (
		result           *InvoiceResponse
		billedTotal      int64
		billedSettlement billing.Settlement
	)

	err := s.ledger.InTransaction(ctx, func(tx billing.LedgerTx) error {
		_, orders, err := tx.AccountWithOrders(ctx, accountID)
		if err != nil {
			return err
		}

		assembly, ok := billing.AssembleInvoice(orders)
		if !ok {
			return nil
		}

		// Re-read every candidate order under its lock. An order billed by
		// a concurrent event between the scan and the lock fails the NEW
		// check and aborts the whole transaction.
		locked := make([]*ordering.Order, 0, len(assembly.Orders))
		var total int64
		for _, o := range assembly.Orders {
			lo, err := tx.LockOrder(ctx, o.ID)
			if err != nil {
				return err
			}
			if !lo.IsNew() {
				return shared.ErrConcurrencyConflict
			}
			locked = append(locked, lo)
			total += lo.Total
		}

		// Settlement is resolved against the balance as seen under the
		// account lock, never against the earlier unlocked read. A corrupt
		// negative stored balance is normalized to zero up front so the
		// credit mutators below see the same balance the resolver saw.
		acct, err := tx.LockAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if acct.CreditBalance < 0 {
			acct.CreditBalance = 0
		}
		settlement := billing.ResolveSettlement(total, acct.CreditBalance)

		invoice, err := billing.NewInvoice(accountID, total)
		if err != nil {
			return err
		}
		invoice.AttachSettlement(settlement)

		if err := tx.CreateInvoice(ctx, invoice); err != nil {
			return err
		}

		if settlement.Credit != nil {
			if settlement.Credit.FromInvoiceToAccount {
				if err := acct.GrantCredit(settlement.Credit.TransferAmount); err != nil {
					return err
				}
			} else if _, err := acct.ConsumeCredit(settlement.Credit.TransferAmount); err != nil {
				return err
			}
		}
		if err := tx.SaveAccountBalance(ctx, acct); err != nil {
			return err
		}

		for _, lo := range locked {
			if err := lo.MarkBilled(); err != nil {
				return err
			}
			if err := tx.SaveOrderStatus(ctx, lo); err != nil {
				return err
			}
			for i := range lo.Items {
				item, err := tx.LockOrderItem(ctx, lo.Items[i].ID)
				if err != nil {
					return err
				}
				if err := item.LinkInvoice(invoice.ID); err != nil {
					return err
				}
				if err := tx.SaveOrderItemInvoice(ctx, item); err != nil {
					return err
				}
			}
		}

		s.logger.Info("billed account",
			zap.String("account_id", accountID.String()),
			zap.String("invoice_id", invoice.ID.String()),
			zap.Int64("invoice_total", invoice.Total),
			zap.Int64("new_balance", acct.CreditBalance),
			zap.Int("orders", len(locked)),
		)

		resp := ToInvoiceResponse(invoice)
		result = &resp
		billedTotal = total
		billedSettlement = settlement
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			if s.metrics != nil {
				s.metrics.RecordConflict(ctx)
			}
			return nil, err
		}
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		// Infrastructure failures (driver errors, broken connections) are
		// surfaced under the TRANSACTION_FAILED domain code; domain errors
		// raised inside the transaction keep their own code.
		var domainErr *shared.DomainError
		if !errors.As(err, &domainErr) {
			err = fmt.Errorf("%w: %v", shared.ErrTransactionFailed, err)
		}
		if s.metrics != nil {
			s.metrics.RecordFailure(ctx)
		}
		s.logger.Error("billing transaction failed",
			zap.String("account_id", accountID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if s.metrics != nil {
		if result == nil {
			s.metrics.RecordNoOp(ctx)
		} else {
			s.metrics.RecordBilled(ctx, billedTotal)
			if billedSettlement.Credit != nil {
				if billedSettlement.Credit.FromInvoiceToAccount {
					s.metrics.RecordCreditGranted(ctx, billedSettlement.Credit.TransferAmount)
				} else {
					s.metrics.RecordCreditConsumed(ctx, billedSettlement.Credit.TransferAmount)
				}
			}
		}
	}

	return result, nil
}

// GetInvoice retrieves an invoice with its credit and payment rows
func (s *BillingService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// ListInvoicesByAccount retrieves all invoices billed against an account
func (s *BillingService) ListInvoicesByAccount(ctx context.Context, accountID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses, nil
}
