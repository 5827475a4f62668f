package cashflow

import (
	"time"

	"kadai-backend/internal/currency"
	"kadai-backend/internal/httputil"
	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

type SaleResponse struct {
	PostingResponse
	ItemDeleted bool `json:"item_deleted"`
}

type SaleCreatedResponse struct {
	Sale SaleResponse `json:"sale"`
	BalanceResponse
	ItemQty int64 `json:"item_qty"`
}

// GET /api/sales?page=1&page_size=20
func ListSalesHandler(store *ledger.Store, cur currency.Formatter, zone *time.Location) fiber.Handler {
	v := view{cur: cur, zone: zone}
	return func(c *fiber.Ctx) error {
		res, err := store.ListSales(c.UserContext(), httputil.PageFromQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(httputil.NewList(res, func(r ledger.SaleRow) SaleResponse {
			itemID := r.ItemID
			return SaleResponse{
				PostingResponse: v.posting(r.ID, &itemID, r.ItemName, r.Qty, r.Rate, r.Amount, r.Timestamp),
				ItemDeleted:     r.ItemDeleted,
			}
		}))
	}
}

// POST /api/sales
func CreateSaleHandler(store *ledger.Store, cur currency.Formatter, zone *time.Location) fiber.Handler {
	v := view{cur: cur, zone: zone}
	return func(c *fiber.Ctx) error {
		body, rate, err := parsePosting(c)
		if err != nil {
			return err
		}

		s, err := store.PostSale(c.UserContext(), body.ItemID, body.Qty, rate)
		if err != nil {
			return err
		}

		itemID := s.ItemID
		return c.Status(fiber.StatusCreated).JSON(SaleCreatedResponse{
			Sale: SaleResponse{
				PostingResponse: v.posting(s.ID, &itemID, s.ItemName, s.Qty, s.Rate, s.Amount, s.Timestamp),
			},
			BalanceResponse: v.balance(s.CashBalance),
			ItemQty:         s.Stock,
		})
	}
}
