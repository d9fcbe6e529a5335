package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem is a stocked part ("insumo") with on-hand and minimum quantities.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Quantity is only changed through StockMovement values applied by the ledger.
type StockItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimum_quantity"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewStockItem(name, description string, unitPrice decimal.Decimal, quantity, minimum int, now time.Time) (StockItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return StockItem{}, fmt.Errorf("%w: name is required", ErrInvalidStockItemFields)
	}
	if !unitPrice.IsPositive() {
		return StockItem{}, ErrInvalidUnitPrice
	}
	if quantity < 0 || minimum < 0 {
		return StockItem{}, ErrInvalidQuantity
	}
	if minimum > quantity {
		return StockItem{}, ErrMinimumAboveQuantity
	}

	return StockItem{
		ID:              uuid.NewString(),
		Name:            name,
		Description:     strings.TrimSpace(description),
		UnitPrice:       unitPrice,
		Quantity:        quantity,
		MinimumQuantity: minimum,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsCritical reports whether the on-hand quantity is at or below the minimum.
func (s StockItem) IsCritical() bool {
	return s.Quantity <= s.MinimumQuantity
}

// CanApply reports whether a movement keeps the quantity non-negative.
func (s StockItem) CanApply(delta int) bool {
	return s.Quantity+delta >= 0
}

// MovementReason tags why a quantity changed.
type MovementReason string

const (
	MovementReasonManualDebit MovementReason = "manual_debit"
	MovementReasonRestock     MovementReason = "restock"
	MovementReasonReservation MovementReason = "order_reservation"
	MovementReasonRelease     MovementReason = "order_release"
)

// StockMovement is one quantity change applied atomically to a stock item.
// Delta is negative for debits.
type StockMovement struct {
	StockItemID string
	Delta       int
	OrderID     string
	Reason      MovementReason
}

func (m StockMovement) IsDebit() bool {
	return m.Delta < 0
}

// MergeMovements folds movements hitting the same stock item into one,
// preserving first-seen order. Zero-delta results are dropped.
func MergeMovements(movements []StockMovement) []StockMovement {
	index := make(map[string]int, len(movements))
	out := make([]StockMovement, 0, len(movements))
	for _, m := range movements {
		if i, ok := index[m.StockItemID]; ok {
			out[i].Delta += m.Delta
			continue
		}
		index[m.StockItemID] = len(out)
		out = append(out, m)
	}

	merged := out[:0]
	for _, m := range out {
		if m.Delta != 0 {
			merged = append(merged, m)
		}
	}
	return merged
}
