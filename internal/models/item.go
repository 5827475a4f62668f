package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry. Qty only moves through purchase and sale postings.
type Item struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"` // list price
	Qty       int64           `gorm:"not null;default:0" json:"qty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
