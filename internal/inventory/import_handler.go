package inventory

import (
	"fmt"
	"io"
	"strings"

	"kadai-backend/internal/currency"
	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type SkippedRowResponse struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type ImportResponse struct {
	Created []ItemResponse       `json:"created"`
	Skipped []SkippedRowResponse `json:"skipped"`
}

// POST /api/items/import (multipart, field "file")
// First sheet, column A name, column B price. A header row is skipped.
func ImportItemsHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "only .xlsx files can be imported")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer file.Close()

		rows, err := ReadItemRows(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := store.ImportItems(c.UserContext(), rows)
		if err != nil {
			return err
		}

		resp := ImportResponse{
			Created: make([]ItemResponse, 0, len(res.Created)),
			Skipped: make([]SkippedRowResponse, 0, len(res.Skipped)),
		}
		conv := toItemResponse(cur)
		for _, it := range res.Created {
			resp.Created = append(resp.Created, conv(it))
		}
		for _, s := range res.Skipped {
			resp.Skipped = append(resp.Skipped, SkippedRowResponse{Row: s.Row, Name: s.Name, Reason: s.Reason})
		}
		return c.JSON(resp)
	}
}

// ReadItemRows reads name/price pairs from the first sheet of a workbook.
// Blank rows are ignored; row numbers are 1-based sheet rows.
func ReadItemRows(r io.Reader) ([]ledger.ItemRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	items := make([]ledger.ItemRow, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if i == 0 && isHeader(row[0]) {
			continue
		}
		item := ledger.ItemRow{Row: i + 1, Name: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			item.Price = strings.TrimSpace(row[1])
		}
		items = append(items, item)
	}
	return items, nil
}

func isHeader(cell string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	return cell == "name" || cell == "item" || cell == "item name"
}
