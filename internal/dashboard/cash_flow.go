package dashboard

import (
	"time"

	"kadai-backend/internal/currency"
	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

type CashFlowPoint struct {
	Label     string `json:"label"` // bucket start: day, week (Monday) or month
	In        string `json:"in"`
	Out       string `json:"out"`
	Net       string `json:"net"`
	Sales     int    `json:"sales"`
	Purchases int    `json:"purchases"`
}

type CashFlowTotals struct {
	In         string `json:"in"`
	Out        string `json:"out"`
	Net        string `json:"net"`
	NetDisplay string `json:"net_display"`
}

type CashFlowResponse struct {
	Period string          `json:"period"` // daily | weekly | monthly
	From   string          `json:"from"`
	To     string          `json:"to"` // inclusive
	Points []CashFlowPoint `json:"points"`
	Totals CashFlowTotals  `json:"totals"`
}

// GET /api/dashboard/cash-flow?period=daily&count=7
func CashFlowHandler(store *ledger.Store, cur currency.Formatter, zone *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period, err := ledger.ParsePeriod(c.Query("period"))
		if err != nil {
			return err
		}
		count := c.QueryInt("count", 0)
		if count < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "count must be positive")
		}

		flow, err := store.CashFlow(c.UserContext(), ledger.CashFlowQuery{
			Period: period,
			Count:  count,
			Zone:   zone,
		})
		if err != nil {
			return err
		}

		resp := CashFlowResponse{
			Period: string(flow.Period),
			From:   flow.From.Format("2006-01-02"),
			To:     flow.To.AddDate(0, 0, -1).Format("2006-01-02"),
			Points: make([]CashFlowPoint, 0, len(flow.Points)),
			Totals: CashFlowTotals{
				In:         flow.In.StringFixed(ledger.MoneyPlaces),
				Out:        flow.Out.StringFixed(ledger.MoneyPlaces),
				Net:        flow.Net.StringFixed(ledger.MoneyPlaces),
				NetDisplay: cur.Format(flow.Net),
			},
		}
		for _, p := range flow.Points {
			resp.Points = append(resp.Points, CashFlowPoint{
				Label:     p.Start.Format("2006-01-02"),
				In:        p.In.StringFixed(ledger.MoneyPlaces),
				Out:       p.Out.StringFixed(ledger.MoneyPlaces),
				Net:       p.Net.StringFixed(ledger.MoneyPlaces),
				Sales:     p.Sales,
				Purchases: p.Purchases,
			})
		}
		return c.JSON(resp)
	}
}
