package cashflow

import (
	"time"

	"kadai-backend/internal/currency"
	"kadai-backend/internal/httputil"
	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

type PurchaseCreatedResponse struct {
	Purchase PostingResponse `json:"purchase"`
	BalanceResponse
	ItemQty int64 `json:"item_qty"`
}

// GET /api/purchases?page=1&page_size=20
func ListPurchasesHandler(store *ledger.Store, cur currency.Formatter, zone *time.Location) fiber.Handler {
	v := view{cur: cur, zone: zone}
	return func(c *fiber.Ctx) error {
		res, err := store.ListPurchases(c.UserContext(), httputil.PageFromQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(httputil.NewList(res, func(r ledger.PurchaseRow) PostingResponse {
			return v.posting(r.ID, r.ItemID, r.ItemName, r.Qty, r.Rate, r.Amount, r.Timestamp)
		}))
	}
}

// POST /api/purchases
func CreatePurchaseHandler(store *ledger.Store, cur currency.Formatter, zone *time.Location) fiber.Handler {
	v := view{cur: cur, zone: zone}
	return func(c *fiber.Ctx) error {
		body, rate, err := parsePosting(c)
		if err != nil {
			return err
		}

		p, err := store.PostPurchase(c.UserContext(), body.ItemID, body.Qty, rate)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(PurchaseCreatedResponse{
			Purchase:        v.posting(p.ID, p.ItemID, p.ItemName, p.Qty, p.Rate, p.Amount, p.Timestamp),
			BalanceResponse: v.balance(p.CashBalance),
			ItemQty:         p.Stock,
		})
	}
}
