package ledger

import (
	"context"
	"fmt"
	"math"

	"kadai-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseReceipt is a committed purchase together with the item stock
// and cash balance it left behind.
type PurchaseReceipt struct {
	models.Purchase
	ItemName    string
	Stock       int64
	CashBalance decimal.Decimal
}

type SaleReceipt struct {
	models.Sale
	ItemName    string
	Stock       int64
	CashBalance decimal.Decimal
}

// PostPurchase buys qty units of an item at rate each: cash goes down by
// qty*rate, stock goes up by qty and a Purchase row is appended.
func (s *Store) PostPurchase(ctx context.Context, itemID uint, qty int64, rate decimal.Decimal) (PurchaseReceipt, error) {
	amount, err := postingAmount(qty, rate)
	if err != nil {
		return PurchaseReceipt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var receipt PurchaseReceipt
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := findItem(tx, itemID)
		if err != nil {
			return err
		}
		company, err := s.loadCompany(tx)
		if err != nil {
			return err
		}

		if company.CashBalance.LessThan(amount) {
			return fmt.Errorf("%w: purchase of %s exceeds cash balance %s",
				ErrInsufficientFunds, amount.StringFixed(MoneyPlaces), company.CashBalance.StringFixed(MoneyPlaces))
		}
		if item.Qty > math.MaxInt64-qty {
			return fmt.Errorf("%w: %q cannot hold %d more units", ErrInvalidInput, item.Name, qty)
		}

		balance := company.CashBalance.Sub(amount)
		stock := item.Qty + qty
		if err := applyPosting(tx, &company, balance, &item, stock); err != nil {
			return err
		}

		id := item.ID
		receipt = PurchaseReceipt{
			Purchase: models.Purchase{
				Timestamp: s.now().UTC(),
				ItemID:    &id,
				Qty:       qty,
				Rate:      rate,
				Amount:    amount,
			},
			ItemName:    item.Name,
			Stock:       stock,
			CashBalance: balance,
		}
		if err := tx.Create(&receipt.Purchase).Error; err != nil {
			return fmt.Errorf("append purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return PurchaseReceipt{}, err
	}

	s.log.Info().
		Uint("purchase_id", receipt.ID).
		Uint("item_id", itemID).
		Int64("qty", qty).
		Str("rate", rate.StringFixed(MoneyPlaces)).
		Str("amount", amount.StringFixed(MoneyPlaces)).
		Str("cash_balance", receipt.CashBalance.StringFixed(MoneyPlaces)).
		Int64("stock", receipt.Stock).
		Msg("purchase posted")
	return receipt, nil
}

// PostSale sells qty units of an item at rate each: cash goes up by
// qty*rate, stock goes down by qty and a Sale row is appended. Selling
// more than is in stock is refused.
func (s *Store) PostSale(ctx context.Context, itemID uint, qty int64, rate decimal.Decimal) (SaleReceipt, error) {
	amount, err := postingAmount(qty, rate)
	if err != nil {
		return SaleReceipt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var receipt SaleReceipt
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := findItem(tx, itemID)
		if err != nil {
			return err
		}
		if item.Qty < qty {
			return fmt.Errorf("%w: %q has %d in stock, %d requested", ErrInsufficientStock, item.Name, item.Qty, qty)
		}
		company, err := s.loadCompany(tx)
		if err != nil {
			return err
		}

		balance := company.CashBalance.Add(amount)
		if err := checkCapacity("cash balance", balance); err != nil {
			return err
		}
		stock := item.Qty - qty
		if err := applyPosting(tx, &company, balance, &item, stock); err != nil {
			return err
		}

		receipt = SaleReceipt{
			Sale: models.Sale{
				Timestamp: s.now().UTC(),
				ItemID:    item.ID,
				Qty:       qty,
				Rate:      rate,
				Amount:    amount,
			},
			ItemName:    item.Name,
			Stock:       stock,
			CashBalance: balance,
		}
		if err := tx.Create(&receipt.Sale).Error; err != nil {
			return fmt.Errorf("append sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return SaleReceipt{}, err
	}

	s.log.Info().
		Uint("sale_id", receipt.ID).
		Uint("item_id", itemID).
		Int64("qty", qty).
		Str("rate", rate.StringFixed(MoneyPlaces)).
		Str("amount", amount.StringFixed(MoneyPlaces)).
		Str("cash_balance", receipt.CashBalance.StringFixed(MoneyPlaces)).
		Int64("stock", receipt.Stock).
		Msg("sale posted")
	return receipt, nil
}

// postingAmount validates a posting and returns qty*rate, which must
// itself fit a money column.
func postingAmount(qty int64, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := checkPosting(qty, rate); err != nil {
		return decimal.Zero, err
	}
	amount := rate.Mul(decimal.NewFromInt(qty))
	if err := checkCapacity("amount", amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func applyPosting(tx *gorm.DB, company *models.Company, balance decimal.Decimal, item *models.Item, stock int64) error {
	if err := tx.Model(company).Update("cash_balance", balance).Error; err != nil {
		return fmt.Errorf("update cash balance: %w", err)
	}
	if err := tx.Model(item).Update("qty", stock).Error; err != nil {
		return fmt.Errorf("update stock of item %d: %w", item.ID, err)
	}
	return nil
}
