package ledger

import (
	"context"
	"fmt"

	"kadai-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Page selects a window of a listing. Number starts at 1; a zero Size
// means the store default.
type Page struct {
	Number int
	Size   int
}

func (s *Store) normalize(p Page) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = s.pageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) offset() int { return (p.Number - 1) * p.Size }

type Result[T any] struct {
	Rows     []T
	Page     int
	PageSize int
	Total    int64
	HasMore  bool
}

func newResult[T any](rows []T, p Page, total int64) Result[T] {
	return Result[T]{
		Rows:     rows,
		Page:     p.Number,
		PageSize: p.Size,
		Total:    total,
		HasMore:  int64(p.offset()+len(rows)) < total,
	}
}

type PurchaseRow struct {
	models.Purchase
	ItemName string
}

type SaleRow struct {
	models.Sale
	ItemName    string
	ItemDeleted bool
}

// ListItems returns items in creation order.
func (s *Store) ListItems(ctx context.Context, p Page) (Result[models.Item], error) {
	p = s.normalize(p)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Item{}).Count(&total).Error; err != nil {
		return Result[models.Item]{}, fmt.Errorf("count items: %w", err)
	}

	var items []models.Item
	if err := db.Order("id asc").Offset(p.offset()).Limit(p.Size).Find(&items).Error; err != nil {
		return Result[models.Item]{}, fmt.Errorf("list items: %w", err)
	}
	return newResult(items, p, total), nil
}

// ListPurchases returns purchases newest first. Rows whose item was
// deleted carry DeletedItemName and a nil ItemID.
func (s *Store) ListPurchases(ctx context.Context, p Page) (Result[PurchaseRow], error) {
	p = s.normalize(p)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Purchase{}).Count(&total).Error; err != nil {
		return Result[PurchaseRow]{}, fmt.Errorf("count purchases: %w", err)
	}

	var purchases []models.Purchase
	if err := newestFirst(db, p).Find(&purchases).Error; err != nil {
		return Result[PurchaseRow]{}, fmt.Errorf("list purchases: %w", err)
	}

	ids := make([]uint, 0, len(purchases))
	for _, pu := range purchases {
		if pu.ItemID != nil {
			ids = append(ids, *pu.ItemID)
		}
	}
	names, err := itemNames(db, ids)
	if err != nil {
		return Result[PurchaseRow]{}, err
	}

	rows := make([]PurchaseRow, 0, len(purchases))
	for _, pu := range purchases {
		name := DeletedItemName
		if pu.ItemID != nil {
			if n, ok := names[*pu.ItemID]; ok {
				name = n
			}
		}
		rows = append(rows, PurchaseRow{Purchase: pu, ItemName: name})
	}
	return newResult(rows, p, total), nil
}

// ListSales returns sales newest first. A sale keeps the id of a deleted
// item; such rows are flagged ItemDeleted and named DeletedItemName.
func (s *Store) ListSales(ctx context.Context, p Page) (Result[SaleRow], error) {
	p = s.normalize(p)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Sale{}).Count(&total).Error; err != nil {
		return Result[SaleRow]{}, fmt.Errorf("count sales: %w", err)
	}

	var sales []models.Sale
	if err := newestFirst(db, p).Find(&sales).Error; err != nil {
		return Result[SaleRow]{}, fmt.Errorf("list sales: %w", err)
	}

	ids := make([]uint, 0, len(sales))
	for _, sa := range sales {
		ids = append(ids, sa.ItemID)
	}
	names, err := itemNames(db, ids)
	if err != nil {
		return Result[SaleRow]{}, err
	}

	rows := make([]SaleRow, 0, len(sales))
	for _, sa := range sales {
		name, ok := names[sa.ItemID]
		if !ok {
			name = DeletedItemName
		}
		rows = append(rows, SaleRow{Sale: sa, ItemName: name, ItemDeleted: !ok})
	}
	return newResult(rows, p, total), nil
}

func newestFirst(db *gorm.DB, p Page) *gorm.DB {
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Offset(p.offset()).
		Limit(p.Size)
}

func itemNames(db *gorm.DB, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var items []models.Item
	if err := db.Select("id", "name").Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load item names: %w", err)
	}
	for _, it := range items {
		names[it.ID] = it.Name
	}
	return names, nil
}
