package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits money values may carry.
const MoneyPlaces = 2

// Money columns are numeric(14,2): twelve integer digits.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// MaxQty bounds a single posting so stock arithmetic stays far from int64
// overflow.
const MaxQty int64 = 1_000_000_000

// ParseAmount parses a price or rate typed by a user. The value must be a
// non-negative decimal with at most two fractional digits.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", ErrInvalidInput, field, s)
	}
	if err := checkAmount(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func checkAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, field)
	}
	if !d.Equal(d.Round(MoneyPlaces)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidInput, field, MoneyPlaces)
	}
	return checkCapacity(field, d)
}

// checkCapacity fails for values a money column cannot hold.
func checkCapacity(field string, d decimal.Decimal) error {
	if d.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s exceeds %s", ErrInvalidInput, field, MaxAmount.StringFixed(MoneyPlaces))
	}
	return nil
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > 100 {
		return "", fmt.Errorf("%w: name is longer than 100 characters", ErrInvalidInput)
	}
	return name, nil
}

func checkPosting(qty int64, rate decimal.Decimal) error {
	if qty <= 0 {
		return fmt.Errorf("%w: qty must be a positive integer, got %d", ErrInvalidInput, qty)
	}
	if qty > MaxQty {
		return fmt.Errorf("%w: qty must be at most %d, got %d", ErrInvalidInput, MaxQty, qty)
	}
	return checkAmount("rate", rate)
}
