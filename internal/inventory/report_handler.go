package inventory

import (
	"fmt"
	"time"

	"kadai-backend/internal/currency"
	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Stock"

type StockLineResponse struct {
	ItemResponse
	Value        string `json:"value"`
	ValueDisplay string `json:"value_display"`
}

type StockReportResponse struct {
	Items              []StockLineResponse `json:"items"`
	StockValue         string              `json:"stock_value"`
	StockValueDisplay  string              `json:"stock_value_display"`
	CashBalance        string              `json:"cash_balance"`
	CashBalanceDisplay string              `json:"cash_balance_display"`
}

// GET /api/report
func StockReportHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := store.StockReport(c.UserContext())
		if err != nil {
			return err
		}

		conv := toItemResponse(cur)
		resp := StockReportResponse{
			Items:              make([]StockLineResponse, 0, len(report.Lines)),
			StockValue:         report.StockValue.StringFixed(ledger.MoneyPlaces),
			StockValueDisplay:  cur.Format(report.StockValue),
			CashBalance:        report.CashBalance.StringFixed(ledger.MoneyPlaces),
			CashBalanceDisplay: cur.Format(report.CashBalance),
		}
		for _, l := range report.Lines {
			resp.Items = append(resp.Items, StockLineResponse{
				ItemResponse: conv(l.Item),
				Value:        l.Value.StringFixed(ledger.MoneyPlaces),
				ValueDisplay: cur.Format(l.Value),
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/report/export
func ExportStockReportHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := store.StockReport(c.UserContext())
		if err != nil {
			return err
		}

		f, err := BuildStockWorkbook(report, cur.Code())
		if err != nil {
			return err
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Attachment(fmt.Sprintf("stock_%s.xlsx", time.Now().Format("20060102")))
		return c.Send(buf.Bytes())
	}
}

// BuildStockWorkbook lays the report out on a single "Stock" sheet with
// the totals below the item lines.
func BuildStockWorkbook(report ledger.StockReport, code string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	var err error
	set := func(cell string, v any) {
		if err == nil {
			err = f.SetCellValue(reportSheet, cell, v)
		}
	}

	headers := []string{"ID", "Item", "Price (" + code + ")", "Qty", "Value (" + code + ")"}
	for i, h := range headers {
		set(fmt.Sprintf("%c1", 'A'+i), h)
	}

	row := 2
	for _, l := range report.Lines {
		set(fmt.Sprintf("A%d", row), l.Item.ID)
		set(fmt.Sprintf("B%d", row), l.Item.Name)
		set(fmt.Sprintf("C%d", row), l.Item.Price.InexactFloat64())
		set(fmt.Sprintf("D%d", row), l.Item.Qty)
		set(fmt.Sprintf("E%d", row), l.Value.InexactFloat64())
		row++
	}

	row++
	set(fmt.Sprintf("D%d", row), "Stock value")
	set(fmt.Sprintf("E%d", row), report.StockValue.InexactFloat64())
	row++
	set(fmt.Sprintf("D%d", row), "Cash balance")
	set(fmt.Sprintf("E%d", row), report.CashBalance.InexactFloat64())

	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fill sheet: %w", err)
	}

	_ = f.SetColWidth(reportSheet, "B", "B", 30)
	_ = f.SetColWidth(reportSheet, "C", "E", 14)
	return f, nil
}
