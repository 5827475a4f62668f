package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an append-only ledger row: stock out, cash in.
// ItemID is kept as-is when the item is deleted, so it may point at a
// missing item; readers fall back to a placeholder name.
type Sale struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Timestamp time.Time       `gorm:"index;not null" json:"timestamp"` // UTC
	ItemID    uint            `gorm:"index;not null" json:"item_id"`
	Qty       int64           `gorm:"not null" json:"qty"`
	Rate      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"rate"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"` // qty * rate, fixed at posting
}
