package ledger

import (
	"context"
	"errors"
	"fmt"

	"kadai-backend/internal/models"

	"github.com/shopspring/decimal"
)

type StockLine struct {
	Item  models.Item
	Value decimal.Decimal // qty * list price
}

type StockReport struct {
	Lines       []StockLine
	StockValue  decimal.Decimal
	CashBalance decimal.Decimal
}

// StockReport lists every item with its stock value next to the cash
// balance.
func (s *Store) StockReport(ctx context.Context) (StockReport, error) {
	balance, err := s.GetBalance(ctx)
	if err != nil {
		return StockReport{}, err
	}

	var items []models.Item
	if err := s.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return StockReport{}, fmt.Errorf("list items: %w", err)
	}

	report := StockReport{
		Lines:       make([]StockLine, 0, len(items)),
		StockValue:  decimal.Zero,
		CashBalance: balance,
	}
	for _, it := range items {
		value := it.Price.Mul(decimal.NewFromInt(it.Qty))
		report.Lines = append(report.Lines, StockLine{Item: it, Value: value})
		report.StockValue = report.StockValue.Add(value)
	}
	return report, nil
}

// ItemRow is one line of a bulk item import. Row is the 1-based source
// line used in the result.
type ItemRow struct {
	Row   int
	Name  string
	Price string
}

type SkippedRow struct {
	Row    int
	Name   string
	Reason string
}

type ImportResult struct {
	Created []models.Item
	Skipped []SkippedRow
}

// ImportItems creates one item per row. Rows that are malformed or name
// an existing item are skipped; each created item is committed on its own.
func (s *Store) ImportItems(ctx context.Context, rows []ItemRow) (ImportResult, error) {
	var res ImportResult
	for _, r := range rows {
		price, err := ParseAmount("price", r.Price)
		if err == nil {
			var item models.Item
			if item, err = s.CreateItem(ctx, r.Name, price); err == nil {
				res.Created = append(res.Created, item)
				continue
			}
		}
		if !errors.Is(err, ErrInvalidInput) && !errors.Is(err, ErrDuplicateName) {
			return res, fmt.Errorf("import row %d: %w", r.Row, err)
		}
		res.Skipped = append(res.Skipped, SkippedRow{Row: r.Row, Name: r.Name, Reason: err.Error()})
	}

	s.log.Info().Int("created", len(res.Created)).Int("skipped", len(res.Skipped)).Msg("items imported")
	return res, nil
}
