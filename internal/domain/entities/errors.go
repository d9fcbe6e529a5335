package entities

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Use cases wrap these sentinels so
// callers can branch with errors.Is regardless of the concrete message.
var (
	ErrInvalidState             = errors.New("invalid state transition")
	ErrInsufficientStock        = errors.New("insufficient stock")
	ErrInvalidQuantity          = errors.New("invalid quantity")
	ErrNotEligibleForExpiration = errors.New("budget not eligible for expiration")
	ErrNotFound                 = errors.New("not found")
	ErrPersistenceFailure       = errors.New("persistence failure")
)

var (
	ErrInvalidUnitPrice       = errors.New("invalid unit price")
	ErrMinimumAboveQuantity   = errors.New("minimum quantity above on-hand quantity")
	ErrInvalidBudgetValue     = errors.New("invalid budget value")
	ErrActiveBudgetExists     = errors.New("order already has an active budget")
	ErrInvalidStockItemFields = errors.New("invalid stock item fields")
	ErrInvalidOrderFields     = errors.New("invalid order fields")
	ErrInvalidServiceFields   = errors.New("invalid service fields")
	ErrTooManyStockItems      = fmt.Errorf("%w: too many distinct stock items on one order", ErrInvalidQuantity)
)
