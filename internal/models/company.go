package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is the single shop entity owning the cash balance.
type Company struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	CashBalance decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"cash_balance"` // signed
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
