// Package ledger keeps the item catalog, the cash balance and the
// purchase/sale ledger consistent with each other.
//
// Every mutating operation holds the store mutex and runs inside a single
// database transaction, so a posting either updates stock, balance and
// ledger together or changes nothing.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"kadai-backend/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DeletedItemName stands in for the name of an item that no longer exists.
	DeletedItemName = "(deleted item)"
)

type Store struct {
	db  *gorm.DB
	mu  sync.Mutex
	log zerolog.Logger
	now func() time.Time

	companyName    string
	openingBalance decimal.Decimal
	pageSize       int
}

type Option func(*Store)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithCompany sets the name and opening cash balance used when the
// company row is first created.
func WithCompany(name string, openingBalance decimal.Decimal) Option {
	return func(s *Store) {
		s.companyName = name
		s.openingBalance = openingBalance
	}
}

func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = min(n, MaxPageSize)
		}
	}
}

// WithClock replaces time.Now for ledger timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:             db,
		log:            zerolog.Nop(),
		now:            time.Now,
		companyName:    "Namma Kadai",
		openingBalance: decimal.NewFromInt(1000),
		pageSize:       DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap makes sure the company row exists. It is safe to call any
// number of times.
func (s *Store) Bootstrap(ctx context.Context) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var company models.Company
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		company, err = s.loadCompany(tx)
		return err
	})
	return company, err
}

func (s *Store) GetCompany(ctx context.Context) (models.Company, error) {
	return s.Bootstrap(ctx)
}

func (s *Store) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	company, err := s.Bootstrap(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return company.CashBalance, nil
}

// loadCompany returns the singleton, creating it on first access. The
// caller must hold s.mu.
func (s *Store) loadCompany(tx *gorm.DB) (models.Company, error) {
	var company models.Company
	err := tx.Order("id asc").First(&company).Error
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return company, fmt.Errorf("load company: %w", err)
	}

	if err := checkAmount("opening balance", s.openingBalance); err != nil {
		return company, err
	}
	company = models.Company{
		Name:        s.companyName,
		CashBalance: s.openingBalance,
	}
	if err := tx.Create(&company).Error; err != nil {
		return company, fmt.Errorf("create company: %w", err)
	}
	s.log.Info().
		Uint("company_id", company.ID).
		Str("cash_balance", company.CashBalance.StringFixed(MoneyPlaces)).
		Msg("company created")
	return company, nil
}

func (s *Store) GetItem(ctx context.Context, id uint) (models.Item, error) {
	return findItem(s.db.WithContext(ctx), id)
}

func findItem(tx *gorm.DB, id uint) (models.Item, error) {
	var item models.Item
	if err := tx.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return item, fmt.Errorf("load item %d: %w", id, err)
	}
	return item, nil
}
