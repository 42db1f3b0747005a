package models

import (
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/billing"
	"github.com/google/uuid"
)

// InvoiceModel is the persistence model for invoices
type InvoiceModel struct {
	BaseModel
	AccountID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Total     int64         `gorm:"not null"`
	Credit    *CreditModel  `gorm:"foreignKey:InvoiceID"`
	Payment   *PaymentModel `gorm:"foreignKey:InvoiceID"`
}

// TableName specifies the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// CreditModel is the persistence model for credit transfers
type CreditModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key"`
	AccountID            uuid.UUID `gorm:"type:uuid;not null;index"`
	InvoiceID            uuid.UUID `gorm:"type:uuid;not null;index"`
	FromInvoiceToAccount bool      `gorm:"not null"`
	TransferAmount       int64     `gorm:"not null"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName specifies the table name for CreditModel
func (CreditModel) TableName() string {
	return "credits"
}

// PaymentModel is the persistence model for payments
type PaymentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts InvoiceModel to domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		Total:      m.Total,
	}
	if m.Credit != nil {
		inv.Credit = &billing.Credit{
			ID:                   m.Credit.ID,
			AccountID:            m.Credit.AccountID,
			InvoiceID:            m.Credit.InvoiceID,
			FromInvoiceToAccount: m.Credit.FromInvoiceToAccount,
			TransferAmount:       m.Credit.TransferAmount,
			CreatedAt:            m.Credit.CreatedAt,
			UpdatedAt:            m.Credit.UpdatedAt,
		}
	}
	if m.Payment != nil {
		inv.Payment = &billing.Payment{
			ID:        m.Payment.ID,
			InvoiceID: m.Payment.InvoiceID,
			Amount:    m.Payment.Amount,
			CreatedAt: m.Payment.CreatedAt,
			UpdatedAt: m.Payment.UpdatedAt,
		}
	}
	return inv
}

// FromDomain populates InvoiceModel from domain Invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.AccountID = inv.AccountID
	m.Total = inv.Total
	if inv.Credit != nil {
		m.Credit = &CreditModel{
			ID:                   inv.Credit.ID,
			AccountID:            inv.Credit.AccountID,
			InvoiceID:            inv.Credit.InvoiceID,
			FromInvoiceToAccount: inv.Credit.FromInvoiceToAccount,
			TransferAmount:       inv.Credit.TransferAmount,
			CreatedAt:            inv.Credit.CreatedAt,
			UpdatedAt:            inv.Credit.UpdatedAt,
		}
	}
	if inv.Payment != nil {
		m.Payment = &PaymentModel{
			ID:        inv.Payment.ID,
			InvoiceID: inv.Payment.InvoiceID,
			Amount:    inv.Payment.Amount,
			CreatedAt: inv.Payment.CreatedAt,
			UpdatedAt: inv.Payment.UpdatedAt,
		}
	}
}
