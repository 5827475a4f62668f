// Package currency renders decimal amounts for display.
package currency

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

type Formatter struct {
	code     string
	fraction int
}

// New returns a formatter for an ISO 4217 code known to go-money.
func New(code string) (Formatter, error) {
	// the Money constructor is the only way to get a never nil currency
	cur := money.New(0, code).Currency()
	if cur.Template == "" {
		return Formatter{}, fmt.Errorf("unknown currency %q", code)
	}
	return Formatter{code: cur.Code, fraction: cur.Fraction}, nil
}

func (f Formatter) Code() string { return f.code }

// Format rounds d to the currency's minor unit and renders it with the
// currency symbol, e.g. ₹1,234.50.
func (f Formatter) Format(d decimal.Decimal) string {
	minor := d.Shift(int32(f.fraction)).Round(0).IntPart()
	return money.New(minor, f.code).Display()
}
