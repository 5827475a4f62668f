package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is an append-only ledger row: stock in, cash out.
// ItemID is cleared when the item is deleted so the row survives.
type Purchase struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Timestamp time.Time       `gorm:"index;not null" json:"timestamp"` // UTC
	ItemID    *uint           `gorm:"index" json:"item_id"`
	Qty       int64           `gorm:"not null" json:"qty"`
	Rate      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"rate"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"` // qty * rate, fixed at posting
}
