package server

import (
	"errors"

	"kadai-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var ledgerErrors = []struct {
	err    error
	status int
	code   string
}{
	{ledger.ErrInvalidInput, fiber.StatusBadRequest, "invalid_input"},
	{ledger.ErrDuplicateName, fiber.StatusConflict, "duplicate_name"},
	{ledger.ErrNotFound, fiber.StatusNotFound, "not_found"},
	{ledger.ErrInsufficientFunds, fiber.StatusUnprocessableEntity, "insufficient_funds"},
	{ledger.ErrInsufficientStock, fiber.StatusUnprocessableEntity, "insufficient_stock"},
}

// ErrorHandler maps ledger errors to statuses; fiber errors keep their
// own code. Anything else is logged and reported as a 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message, Code: codeFor(fe.Code)})
		}

		for _, le := range ledgerErrors {
			if errors.Is(err, le.err) {
				return c.Status(le.status).JSON(ErrorResponse{Error: err.Error(), Code: le.code})
			}
		}

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("unexpected error")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "unexpected server error",
			Code:  "internal",
		})
	}
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "invalid_input"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	case fiber.StatusRequestEntityTooLarge:
		return "too_large"
	default:
		if status >= fiber.StatusInternalServerError {
			return "internal"
		}
		return "error"
	}
}
