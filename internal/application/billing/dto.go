package billing

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/billing"
	"github.com/ecuDickens/project-orders-backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CreditResponse represents a credit transfer in API responses
type CreditResponse struct {
	ID                   uuid.UUID         `json:"id"`
	FromInvoiceToAccount bool              `json:"from_invoice_to_account"`
	TransferAmount       valueobject.Money `json:"transfer_amount"`
}

// PaymentResponse represents a payment owed in API responses
type PaymentResponse struct {
	ID     uuid.UUID         `json:"id"`
	Amount valueobject.Money `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses. Credit and payment
// are embedded as owned rows; no back-reference to the invoice is emitted.
type InvoiceResponse struct {
	ID        uuid.UUID         `json:"id"`
	AccountID uuid.UUID         `json:"account_id"`
	Total     valueobject.Money `json:"total"`
	Credit    *CreditResponse   `json:"credit,omitempty"`
	Payment   *PaymentResponse  `json:"payment,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:        inv.ID,
		AccountID: inv.AccountID,
		Total:     valueobject.NewMoney(inv.Total),
		CreatedAt: inv.CreatedAt,
	}
	if inv.Credit != nil {
		resp.Credit = &CreditResponse{
			ID:                   inv.Credit.ID,
			FromInvoiceToAccount: inv.Credit.FromInvoiceToAccount,
			TransferAmount:       valueobject.NewMoney(inv.Credit.TransferAmount),
		}
	}
	if inv.Payment != nil {
		resp.Payment = &PaymentResponse{
			ID:     inv.Payment.ID,
			Amount: valueobject.NewMoney(inv.Payment.Amount),
		}
	}
	return resp
}
