// Package httputil holds request parsing and response shapes shared by
// the fiber handlers.
package httputil

import (
	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

type PageInfo struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	HasMore  bool  `json:"has_more"`
}

type ListResponse[T any] struct {
	Data []T `json:"data"`
	PageInfo
}

// PageFromQuery reads ?page=&page_size=. Out of range values are
// normalized by the store.
func PageFromQuery(c *fiber.Ctx) ledger.Page {
	return ledger.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("page_size", 0),
	}
}

// NewList converts a store result with conv.
func NewList[R, T any](res ledger.Result[R], conv func(R) T) ListResponse[T] {
	data := make([]T, 0, len(res.Rows))
	for _, r := range res.Rows {
		data = append(data, conv(r))
	}
	return ListResponse[T]{
		Data: data,
		PageInfo: PageInfo{
			Page:     res.Page,
			PageSize: res.PageSize,
			Total:    res.Total,
			HasMore:  res.HasMore,
		},
	}
}

// IDParam reads a positive numeric path parameter.
func IDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
