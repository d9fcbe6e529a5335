package request

import (
	"mecanica_xpto_os/internal/usecase"

	"github.com/shopspring/decimal"
)

type CreateStockItemRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price" swaggertype:"string" example:"39.90"`
	Quantity        int             `json:"quantity"`
	MinimumQuantity int             `json:"minimum_quantity"`
}

func (r CreateStockItemRequest) ToInput() usecase.CreateStockItemInput {
	return usecase.CreateStockItemInput{
		Name:            r.Name,
		Description:     r.Description,
		UnitPrice:       r.UnitPrice,
		Quantity:        r.Quantity,
		MinimumQuantity: r.MinimumQuantity,
	}
}

// StockMovementRequest is the body of manual debit and credit calls.
type StockMovementRequest struct {
	Quantity int `json:"quantity"`
}

type UpdateUnitPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string" example:"42.50"`
}
