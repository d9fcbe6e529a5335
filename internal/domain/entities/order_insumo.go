package entities

import (
	"time"

	"github.com/google/uuid"
)

type OrderInsumoStatus string

const (
	OrderInsumoStatusReserved OrderInsumoStatus = "reservado"
	OrderInsumoStatusConsumed OrderInsumoStatus = "consumido"
	OrderInsumoStatusReturned OrderInsumoStatus = "devolvido"
)

// OrderInsumo records a quantity of a stock item allocated to an order.
// Quantity is what was debited and is what gets credited back on release,
// whatever the stock item's current price.
type OrderInsumo struct {
	ID          string            `json:"id"`
	OrderID     string            `json:"order_id"`
	StockItemID string            `json:"stock_item_id"`
	Quantity    int               `json:"quantity"`
	Status      OrderInsumoStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// InsumoLine is a requested allocation, before it is debited.
type InsumoLine struct {
	StockItemID string `json:"stock_item_id"`
	Quantity    int    `json:"quantity"`
}

func NewOrderInsumo(orderID string, line InsumoLine, now time.Time) OrderInsumo {
	return OrderInsumo{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		StockItemID: line.StockItemID,
		Quantity:    line.Quantity,
		Status:      OrderInsumoStatusReserved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
