// Package server assembles the fiber application: middleware, routes and
// the JSON error envelope.
package server

import (
	"strings"
	"time"

	"kadai-backend/internal/cashflow"
	"kadai-backend/internal/config"
	"kadai-backend/internal/currency"
	"kadai-backend/internal/dashboard"
	"kadai-backend/internal/inventory"
	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BodyLimit caps request bodies, spreadsheet uploads included.
const BodyLimit = 8 << 20

func New(cfg *config.Config, store *ledger.Store, cur currency.Formatter, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.CompanyName,
		BodyLimit:             BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(log),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(log))

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	zone := cfg.DisplayZone
	api := app.Group("/api")

	api.Get("/company", cashflow.CompanyHandler(store, cur))
	api.Get("/balance", cashflow.BalanceHandler(store, cur))

	// Items
	api.Get("/items", inventory.ListItemsHandler(store, cur))
	api.Post("/items", inventory.CreateItemHandler(store, cur))
	api.Post("/items/import", inventory.ImportItemsHandler(store, cur))
	api.Get("/items/:id", inventory.GetItemHandler(store, cur))
	api.Put("/items/:id", inventory.UpdateItemHandler(store, cur))
	api.Delete("/items/:id", inventory.DeleteItemHandler(store))

	// Ledger
	api.Get("/purchases", cashflow.ListPurchasesHandler(store, cur, zone))
	api.Post("/purchases", cashflow.CreatePurchaseHandler(store, cur, zone))
	api.Get("/sales", cashflow.ListSalesHandler(store, cur, zone))
	api.Post("/sales", cashflow.CreateSaleHandler(store, cur, zone))

	// Reports
	api.Get("/report", inventory.StockReportHandler(store, cur))
	api.Get("/report/export", inventory.ExportStockReportHandler(store, cur))
	api.Get("/dashboard/cash-flow", dashboard.CashFlowHandler(store, cur, zone))

	return app
}

// RequestLogger writes one line per request once the handler chain,
// error handler included, has finished.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the error handler set the status before it is logged
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Msg("request")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
