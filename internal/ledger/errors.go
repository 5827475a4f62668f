package ledger

import "errors"

// Operation failures. They are returned wrapped with detail; match them
// with errors.Is. None of them leaves partial state behind.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateName     = errors.New("item name already exists")
	ErrNotFound          = errors.New("item not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInsufficientStock = errors.New("insufficient stock")
)
