package cashflow

import (
	"encoding/json"
	"time"

	"kadai-backend/internal/currency"
	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PostingRequest is the body of a purchase or sale. Rate is accepted as
// a JSON number or string.
type PostingRequest struct {
	ItemID uint        `json:"item_id" form:"item_id"`
	Qty    int64       `json:"qty" form:"qty"`
	Rate   json.Number `json:"rate" form:"rate"`
}

type PostingResponse struct {
	ID            uint   `json:"id"`
	ItemID        *uint  `json:"item_id"`
	ItemName      string `json:"item_name"`
	Qty           int64  `json:"qty"`
	Rate          string `json:"rate"`
	Amount        string `json:"amount"`
	AmountDisplay string `json:"amount_display"`
	Timestamp     string `json:"timestamp"` // RFC 3339, UTC
	Date          string `json:"date"`      // display zone
	Time          string `json:"time"`      // display zone
}

type BalanceResponse struct {
	CashBalance        string `json:"cash_balance"`
	CashBalanceDisplay string `json:"cash_balance_display"`
	Currency           string `json:"currency"`
}

type CompanyResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	BalanceResponse
}

// view renders ledger rows in the configured currency and time zone.
type view struct {
	cur  currency.Formatter
	zone *time.Location
}

func (v view) posting(id uint, itemID *uint, itemName string, qty int64, rate, amount decimal.Decimal, ts time.Time) PostingResponse {
	local := ts.In(v.zone)
	return PostingResponse{
		ID:            id,
		ItemID:        itemID,
		ItemName:      itemName,
		Qty:           qty,
		Rate:          rate.StringFixed(ledger.MoneyPlaces),
		Amount:        amount.StringFixed(ledger.MoneyPlaces),
		AmountDisplay: v.cur.Format(amount),
		Timestamp:     ts.UTC().Format(time.RFC3339),
		Date:          local.Format("2006-01-02"),
		Time:          local.Format("03:04 PM"),
	}
}

func (v view) balance(b decimal.Decimal) BalanceResponse {
	return BalanceResponse{
		CashBalance:        b.StringFixed(ledger.MoneyPlaces),
		CashBalanceDisplay: v.cur.Format(b),
		Currency:           v.cur.Code(),
	}
}

func parsePosting(c *fiber.Ctx) (PostingRequest, decimal.Decimal, error) {
	var body PostingRequest
	if err := c.BodyParser(&body); err != nil {
		return body, decimal.Zero, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if body.ItemID == 0 {
		return body, decimal.Zero, fiber.NewError(fiber.StatusBadRequest, "item_id is required")
	}
	rate, err := ledger.ParseAmount("rate", body.Rate.String())
	if err != nil {
		return body, decimal.Zero, err
	}
	return body, rate, nil
}

// GET /api/company
func CompanyHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	v := view{cur: cur}
	return func(c *fiber.Ctx) error {
		company, err := store.GetCompany(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(CompanyResponse{
			ID:              company.ID,
			Name:            company.Name,
			BalanceResponse: v.balance(company.CashBalance),
		})
	}
}

// GET /api/balance
func BalanceHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	v := view{cur: cur}
	return func(c *fiber.Ctx) error {
		balance, err := store.GetBalance(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(v.balance(balance))
	}
}
