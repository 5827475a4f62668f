package ledger

import (
	"context"
	"errors"
	"fmt"

	"kadai-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateItem adds an item with zero stock.
func (s *Store) CreateItem(ctx context.Context, name string, price decimal.Decimal) (models.Item, error) {
	name, err := checkName(name)
	if err != nil {
		return models.Item{}, err
	}
	if err := checkAmount("price", price); err != nil {
		return models.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.Item{Name: name, Price: price, Qty: 0}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, name, 0); err != nil {
			return err
		}
		if err := tx.Create(&item).Error; err != nil {
			return translateWrite(err, name)
		}
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}

	s.log.Info().Uint("item_id", item.ID).Str("name", item.Name).Msg("item created")
	return item, nil
}

// EditItem overwrites name and price. Stock is never touched here.
func (s *Store) EditItem(ctx context.Context, id uint, name string, price decimal.Decimal) (models.Item, error) {
	name, err := checkName(name)
	if err != nil {
		return models.Item{}, err
	}
	if err := checkAmount("price", price); err != nil {
		return models.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var item models.Item
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if item, err = findItem(tx, id); err != nil {
			return err
		}
		if err := ensureUniqueName(tx, name, id); err != nil {
			return err
		}
		if err := tx.Model(&item).Updates(map[string]any{"name": name, "price": price}).Error; err != nil {
			return translateWrite(err, name)
		}
		item.Name = name
		item.Price = price
		return nil
	})
	if err != nil {
		return models.Item{}, err
	}

	s.log.Info().Uint("item_id", item.ID).Str("name", item.Name).Msg("item updated")
	return item, nil
}

// DeleteItem removes an item. Its purchases stay in the ledger with the
// item reference cleared; its sales keep the now dangling item id.
func (s *Store) DeleteItem(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orphaned int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := findItem(tx, id)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Purchase{}).Where("item_id = ?", item.ID).Update("item_id", nil)
		if res.Error != nil {
			return fmt.Errorf("detach purchases of item %d: %w", item.ID, res.Error)
		}
		orphaned = res.RowsAffected

		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("delete item %d: %w", item.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Uint("item_id", id).Int64("purchases_detached", orphaned).Msg("item deleted")
	return nil
}

// ensureUniqueName fails when another item than exceptID is called name.
func ensureUniqueName(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	q := tx.Model(&models.Item{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("check item name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return nil
}

// translateWrite maps a unique index violation that slipped past the
// pre-check (another process writing the same table) to ErrDuplicateName.
func translateWrite(err error, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return fmt.Errorf("save item %q: %w", name, err)
}
