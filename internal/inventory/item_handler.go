package inventory

import (
	"encoding/json"

	"kadai-backend/internal/currency"
	"kadai-backend/internal/httputil"
	"kadai-backend/internal/ledger"
	"kadai-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ItemResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	PriceDisplay string `json:"price_display"`
	Qty          int64  `json:"qty"`
}

// ItemRequest is used for both create and edit. Price is accepted as a
// JSON number or string.
type ItemRequest struct {
	Name  string      `json:"name" form:"name"`
	Price json.Number `json:"price" form:"price"`
}

func toItemResponse(cur currency.Formatter) func(models.Item) ItemResponse {
	return func(it models.Item) ItemResponse {
		return ItemResponse{
			ID:           it.ID,
			Name:         it.Name,
			Price:        it.Price.StringFixed(ledger.MoneyPlaces),
			PriceDisplay: cur.Format(it.Price),
			Qty:          it.Qty,
		}
	}
}

// GET /api/items?page=1&page_size=20
func ListItemsHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := store.ListItems(c.UserContext(), httputil.PageFromQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(httputil.NewList(res, toItemResponse(cur)))
	}
}

// GET /api/items/:id
func GetItemHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.IDParam(c, "id")
		if err != nil {
			return err
		}
		item, err := store.GetItem(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(toItemResponse(cur)(item))
	}
}

// POST /api/items
func CreateItemHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		price, err := ledger.ParseAmount("price", body.Price.String())
		if err != nil {
			return err
		}

		item, err := store.CreateItem(c.UserContext(), body.Name, price)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toItemResponse(cur)(item))
	}
}

// PUT /api/items/:id
func UpdateItemHandler(store *ledger.Store, cur currency.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.IDParam(c, "id")
		if err != nil {
			return err
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		price, err := ledger.ParseAmount("price", body.Price.String())
		if err != nil {
			return err
		}

		item, err := store.EditItem(c.UserContext(), id, body.Name, price)
		if err != nil {
			return err
		}
		return c.JSON(toItemResponse(cur)(item))
	}
}

// DELETE /api/items/:id
func DeleteItemHandler(store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.IDParam(c, "id")
		if err != nil {
			return err
		}
		if err := store.DeleteItem(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
