package models

import (
	"github.com/ecuDickens/project-orders-backend/internal/domain/account"
)

// AccountModel is the persistence model for accounts
type AccountModel struct {
	BaseModel
	Email         string `gorm:"type:varchar(254);not null;uniqueIndex"`
	FirstName     string `gorm:"type:varchar(100);not null"`
	LastName      string `gorm:"type:varchar(100);not null"`
	Address1      string `gorm:"type:varchar(200)"`
	Address2      string `gorm:"type:varchar(200)"`
	City          string `gorm:"type:varchar(100)"`
	State         string `gorm:"type:varchar(100)"`
	PostalCode    string `gorm:"type:varchar(20)"`
	CreditBalance int64  `gorm:"not null;default:0"`
}

// TableName specifies the table name for AccountModel
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts AccountModel to domain Account
func (m *AccountModel) ToDomain() *account.Account {
	return &account.Account{
		BaseEntity:    m.BaseModel.ToDomain(),
		Email:         m.Email,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Address1:      m.Address1,
		Address2:      m.Address2,
		City:          m.City,
		State:         m.State,
		PostalCode:    m.PostalCode,
		CreditBalance: m.CreditBalance,
	}
}

// FromDomain populates AccountModel from domain Account
func (m *AccountModel) FromDomain(a *account.Account) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Email = a.Email
	m.FirstName = a.FirstName
	m.LastName = a.LastName
	m.Address1 = a.Address1
	m.Address2 = a.Address2
	m.City = a.City
	m.State = a.State
	m.PostalCode = a.PostalCode
	m.CreditBalance = a.CreditBalance
}
